package geiser

import "strings"

/*
This file resolves the module context of a buffer position by purely
lexical means: it scans outward through the structural forms enclosing
the position looking for a define-module head. The runtime's own notion
of the current module is not consulted, so the result can disagree with
what symbol completion sees; autodoc deliberately follows the buffer.
*/

// NoModule is the sentinel returned when no enclosing module
// declaration exists. It is an ordinary outcome, not an error.
const NoModule = ""

// ModuleAt returns the name declared by the innermost define-module
// form enclosing pos in text, or NoModule when the position is at top
// level.
func ModuleAt(text string, pos int) string {
	if pos < 0 {
		return NoModule
	}
	if pos > len(text) {
		pos = len(text)
	}
	opens := enclosingOpens(text, pos)
	for i := len(opens) - 1; i >= 0; i-- {
		head, rest := headToken(text, opens[i]+1)
		if head == "define-module" {
			if name := nameToken(text, rest); name != "" {
				return name
			}
		}
	}
	return NoModule
}

// enclosingOpens returns the positions of the unclosed open brackets
// before pos, outermost first. Strings and line comments are skipped.
func enclosingOpens(text string, pos int) []int {
	var stack []int
	i := 0
	for i < pos {
		switch text[i] {
		case '(', '[':
			stack = append(stack, i)
			i++
		case ')', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			i++
		case '"':
			i = skipString(text, i)
		case ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	return stack
}

// MatchingClose returns the position just past the close bracket
// matching the open bracket at pos, using a depth counter over the
// stack of opened bracket kinds. An unmatched open consumes the rest of
// the buffer: the result is len(text), never an error. The close kind
// is not required to match the open kind; a ] may close a (. That is a
// known limitation of this matcher, kept for parity with the structural
// scan above.
func MatchingClose(text string, pos int) int {
	if pos < 0 || pos >= len(text) || (text[pos] != '(' && text[pos] != '[') {
		return len(text)
	}
	var kinds []byte
	i := pos
	for i < len(text) {
		switch text[i] {
		case '(', '[':
			kinds = append(kinds, text[i])
			i++
		case ')', ']':
			kinds = kinds[:len(kinds)-1]
			i++
			if len(kinds) == 0 {
				return i
			}
		case '"':
			i = skipString(text, i)
		case ';':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		default:
			i++
		}
	}
	return len(text)
}

// skipString advances past a string literal starting at the opening
// quote.
func skipString(text string, i int) int {
	i++
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

// headToken reads the first symbol after position i, returning it and
// the position following it.
func headToken(text string, i int) (string, int) {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	start := i
	for i < len(text) && !isDelim(text[i]) {
		i++
	}
	return text[start:i], i
}

// nameToken reads a module name starting at or after position i: a
// symbol, or a parenthesized compound name taken verbatim.
func nameToken(text string, i int) string {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		return ""
	}
	if text[i] == '(' || text[i] == '[' {
		end := MatchingClose(text, i)
		return strings.TrimSpace(text[i:end])
	}
	name, _ := headToken(text, i)
	return name
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelim(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '[' || c == ']' || c == '"' || c == ';'
}
