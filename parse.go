package stklos

/*
This file converts lexer tokens into Scheme values. Requests and replies
on the Geiser connection are read with the same reader as ordinary
source text.
*/

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads every expression in source, in order.
func Parse(source io.Reader) ([]Value, error) {
	src := bufio.NewReader(source)
	tokens := make(chan token)
	go lex(src, tokens)
	p := parser{tokens: tokens}
	var exprs []Value
	for {
		tok, ok := p.next()
		if !ok {
			return exprs, nil
		}
		v, err := p.expr(tok)
		if err != nil {
			// Unblock the lexer goroutine before abandoning the stream.
			for range p.tokens {
			}
			return exprs, err
		}
		exprs = append(exprs, v)
	}
}

// ParseString reads every expression in src.
func ParseString(src string) ([]Value, error) {
	return Parse(strings.NewReader(src))
}

// parser tracks the token stream with one token of pushback.
type parser struct {
	tokens chan token
	peeked *token
}

func (p *parser) next() (token, bool) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, true
	}
	tok, ok := <-p.tokens
	return tok, ok
}

func (p *parser) back(tok token) {
	p.peeked = &tok
}

// expr parses one expression starting at tok.
func (p *parser) expr(tok token) (Value, error) {
	switch tok.Kind {
	case badToken:
		return nil, tok.Err
	case openToken:
		return p.list(tok)
	case closeToken:
		return nil, fmt.Errorf("unexpected %q at line %d", tok.Value, tok.Line)
	case dotToken:
		return nil, fmt.Errorf("unexpected . at line %d", tok.Line)
	case quoteToken:
		inner, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("unexpected end of input after %q", tok.Value)
		}
		v, err := p.expr(inner)
		if err != nil {
			return nil, err
		}
		return List(quoteSym(tok.Value), v), nil
	case numberToken:
		if n, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at line %d", tok.Value, tok.Line)
		}
		return f, nil
	case stringToken:
		return tok.Value, nil
	case hashToken:
		switch tok.Value {
		case "#t":
			return true, nil
		case "#f":
			return false, nil
		}
		return Intern(tok.Value), nil
	case identToken:
		return Intern(tok.Value), nil
	}
	return nil, fmt.Errorf("unhandled token %q at line %d", tok.Value, tok.Line)
}

// list parses the remainder of a list whose open bracket was already
// consumed. The close bracket kind is not required to match the open.
func (p *parser) list(open token) (Value, error) {
	var head Value
	tail := &head
	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("unclosed %q at line %d", open.Value, open.Line)
		}
		switch tok.Kind {
		case badToken:
			return nil, tok.Err
		case closeToken:
			return head, nil
		case dotToken:
			if head == nil {
				return nil, fmt.Errorf("unexpected . at line %d", tok.Line)
			}
			end, ok := p.next()
			if !ok {
				return nil, fmt.Errorf("unclosed %q at line %d", open.Value, open.Line)
			}
			v, err := p.expr(end)
			if err != nil {
				return nil, err
			}
			*tail = v
			cl, ok := p.next()
			if !ok || cl.Kind != closeToken {
				return nil, fmt.Errorf("expected close bracket after dotted tail at line %d", tok.Line)
			}
			return head, nil
		default:
			v, err := p.expr(tok)
			if err != nil {
				return nil, err
			}
			cell := &Pair{Car: v}
			*tail = cell
			tail = &cell.Cdr
		}
	}
}

func quoteSym(mark string) *Symbol {
	switch mark {
	case "'":
		return symQuote
	case "`":
		return symQuasiquote
	case ",@":
		return symUnquoteSplic
	}
	return symUnquote
}
