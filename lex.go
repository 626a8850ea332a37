package stklos

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	openToken   // open bracket: ( or [
	closeToken  // close bracket: ) or ]
	quoteToken  // ', `, ",", or ",@"
	dotToken    // . inside a list
	numberToken // number
	stringToken // "string"
	hashToken   // #t, #f, #:keyword
	identToken  // symbol
)

// lexFn is a lexer state function. Each lexFn lexes a token, sends it
// on the supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int)

// lex converts a source into a stream of tokens.
func lex(src *bufio.Reader, tokens chan<- token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the
// predicate to b. Returns b after appending and the number of
// characters read. The first rune which did not satisfy the predicate
// is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, int) {
	n := 0
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			return b, n
		}
		if !predicate(r) {
			src.UnreadRune()
			return b, n
		}
		b = append(b, string(r)...)
		n++
	}
}

// isDelimiter reports whether r ends a symbol or number.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '(', ')', '[', ']', '"', ';', '\'', '`', ',':
		return true
	}
	return false
}

// eatSpace consumes whitespace and comments, then dispatches on the
// first meaningful character.
func eatSpace(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err != io.EOF {
				tokens <- token{Kind: badToken, Err: err, Line: line, Col: col}
			}
			return nil, line, col
		}
		switch {
		case r == '\n':
			line, col = line+1, 1
			continue
		case r == ' ' || r == '\t' || r == '\r':
			col++
			continue
		case r == ';':
			// Comment to end of line.
			for {
				r, _, err = src.ReadRune()
				if err != nil {
					return nil, line, col
				}
				if r == '\n' {
					line, col = line+1, 1
					break
				}
			}
			continue
		case r == '(' || r == '[':
			tokens <- token{Kind: openToken, Value: string(r), Line: line, Col: col}
			col++
			continue
		case r == ')' || r == ']':
			tokens <- token{Kind: closeToken, Value: string(r), Line: line, Col: col}
			col++
			continue
		case r == '\'' || r == '`':
			tokens <- token{Kind: quoteToken, Value: string(r), Line: line, Col: col}
			col++
			continue
		case r == ',':
			v := ","
			if nr, _, err := src.ReadRune(); err == nil {
				if nr == '@' {
					v = ",@"
				} else {
					src.UnreadRune()
				}
			}
			tokens <- token{Kind: quoteToken, Value: v, Line: line, Col: col}
			col += len(v)
			continue
		case r == '"':
			return lexString, line, col
		case r == '#':
			return lexHash, line, col
		default:
			src.UnreadRune()
			return lexAtom, line, col
		}
	}
}

// lexString lexes a string literal. The opening quote has already been
// consumed.
func lexString(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b := strings.Builder{}
	start := col
	col++
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			tokens <- token{Kind: badToken, Err: fmt.Errorf("unterminated string at line %d", line), Line: line, Col: start}
			return nil, line, col
		}
		col++
		switch r {
		case '"':
			tokens <- token{Kind: stringToken, Value: b.String(), Line: line, Col: start}
			return eatSpace, line, col
		case '\\':
			e, _, err := src.ReadRune()
			if err != nil {
				tokens <- token{Kind: badToken, Err: fmt.Errorf("unterminated string at line %d", line), Line: line, Col: start}
				return nil, line, col
			}
			col++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"':
				b.WriteRune(e)
			default:
				b.WriteRune(e)
			}
		case '\n':
			b.WriteRune(r)
			line, col = line+1, 1
		default:
			b.WriteRune(r)
		}
	}
}

// lexHash lexes #t, #f, and #:keyword forms. The # has already been
// consumed.
func lexHash(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b := []byte{'#'}
	b, n := accept(src, func(r rune) bool { return !isDelimiter(r) }, b)
	v := string(b)
	switch {
	case v == "#t" || v == "#f" || strings.HasPrefix(v, "#:"):
		tokens <- token{Kind: hashToken, Value: v, Line: line, Col: col}
	default:
		tokens <- token{Kind: badToken, Err: fmt.Errorf("unsupported syntax %q at line %d", v, line), Line: line, Col: col}
		return nil, line, col
	}
	return eatSpace, line, col + n + 1
}

// lexAtom lexes a number, a symbol, or a lone dot.
func lexAtom(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, n := accept(src, func(r rune) bool { return !isDelimiter(r) }, nil)
	v := string(b)
	switch {
	case v == ".":
		tokens <- token{Kind: dotToken, Value: v, Line: line, Col: col}
	case looksNumeric(v):
		tokens <- token{Kind: numberToken, Value: v, Line: line, Col: col}
	default:
		tokens <- token{Kind: identToken, Value: v, Line: line, Col: col}
	}
	return eatSpace, line, col + n
}

// looksNumeric reports whether an atom should be parsed as a number. A
// leading sign only counts when followed by more of the atom, so + and
// - remain symbols.
func looksNumeric(v string) bool {
	if v == "" {
		return false
	}
	i := 0
	if v[0] == '+' || v[0] == '-' {
		if len(v) == 1 {
			return false
		}
		i = 1
	}
	if v[i] == '.' {
		i++
	}
	return i < len(v) && v[i] >= '0' && v[i] <= '9'
}
