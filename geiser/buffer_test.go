package geiser

import (
	"strings"
	"testing"
)

// TestModuleAt tests lexical module resolution around a buffer
// position. The marker | in the source denotes the position.
func TestModuleAt(t *testing.T) {
	cases := map[string]struct {
		text string
		want string
	}{
		"TopLevel":   {"(define x |1)", NoModule},
		"Inside":     {"(define-module mine (define x |1))", "mine"},
		"Innermost":  {"(define-module outer (define-module inner (f |g)))", "inner"},
		"AfterOther": {"(define-module first 1) (define y |2)", NoModule},
		"Bracketed":  {"(define-module mine [define x |1])", "mine"},
		"Compound":   {"(define-module (srfi 1) (f |g))", "(srfi 1)"},
		"InString":   {`(define-module mine (display "|"))`, "mine"},
		"Comment":    {"(define-module mine ; trailing\n (f |g))", "mine"},
		"Unclosed":   {"(define-module mine (f |g", "mine"},
		"BeforeAll":  {"|(define-module mine 1)", NoModule},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			pos := strings.Index(c.text, "|")
			if pos < 0 {
				t.Fatal("test case has no position marker")
			}
			text := strings.Replace(c.text, "|", "", 1)
			if got := ModuleAt(text, pos); got != c.want {
				t.Errorf("ModuleAt(%q, %d) = %q, want %q", text, pos, got, c.want)
			}
		})
	}
}

// TestMatchingClose tests bracket matching, including the unmatched
// case consuming the rest of the buffer and the tolerated kind
// mismatch.
func TestMatchingClose(t *testing.T) {
	cases := map[string]struct {
		text string
		pos  int
		want int
	}{
		"Simple":       {"(a b)", 0, 5},
		"Nested":       {"(a (b) c)", 0, 9},
		"InnerForm":    {"(a (b) c)", 3, 6},
		"Bracket":      {"[a b]", 0, 5},
		"KindMismatch": {"(a b]", 0, 5},
		"Unmatched":    {"(a (b)", 0, 6},
		"StringParen":  {`(a ")")`, 0, 7},
		"CommentParen": {"(a ;)\nb)", 0, 8},
		"NotAnOpen":    {"abc", 0, 3},
		"OutOfRange":   {"(a)", 9, 3},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := MatchingClose(c.text, c.pos); got != c.want {
				t.Errorf("MatchingClose(%q, %d) = %d, want %d", c.text, c.pos, got, c.want)
			}
		})
	}
}
