package stklos_test

import (
	"testing"

	"github.com/geisertalk/stklos/testutils"
)

// TestScripts runs small Scheme programs through the shared testing VM.
func TestScripts(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Factorial": {
			Source: `
				(define (fact n) (if (< n 2) 1 (* n (fact (- n 1)))))
				(fact 6)`,
			Pass: testutils.PassEqual(int64(720)),
		},
		"ListBuild": {
			Source: "(cons 1 (list 2 3))",
			Pass:   testutils.PassWritten("(1 2 3)"),
		},
		"RestGather": {
			Source: "(define (snoc . xs) xs) (snoc 'a 'b)",
			Pass:   testutils.PassWritten("(a b)"),
		},
		"HigherOrder": {
			Source: "(define (twice f x) (f (f x))) (twice (lambda (n) (* 3 n)) 2)",
			Pass:   testutils.PassEqual(int64(18)),
		},
		"Raise": {
			Source: `(error "deliberate")`,
			Pass:   testutils.PassError(),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}
