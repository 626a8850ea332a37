package geiser

import "testing"

// TestCommandExpression tests the translation table: one verb in, one
// request expression out.
func TestCommandExpression(t *testing.T) {
	cases := map[string]struct {
		cmd  Command
		want string
	}{
		"EvalNoModule": {
			Command{Verb: "eval", Args: []string{"(+ 1 2)"}},
			"(geiser:eval #f '(+ 1 2))",
		},
		"EvalInModule": {
			Command{Verb: "eval", Module: "srfi-1", Args: []string{"(fold + 0 l)"}},
			"(geiser:eval 'srfi-1 '(fold + 0 l))",
		},
		"CompileIsEval": {
			Command{Verb: "compile", Args: []string{"(f)"}},
			"(geiser:eval #f '(f))",
		},
		"LoadFile": {
			Command{Verb: "load-file", Args: []string{"/tmp/x.stk"}},
			`(geiser:load-file "/tmp/x.stk")`,
		},
		"CompileFileIsLoad": {
			Command{Verb: "compile-file", Args: []string{"/tmp/x.stk"}},
			`(geiser:load-file "/tmp/x.stk")`,
		},
		"LoadFileEscapes": {
			Command{Verb: "load-file", Args: []string{`/tmp/"odd".stk`}},
			`(geiser:load-file "/tmp/\"odd\".stk")`,
		},
		"AutodocTopLevel": {
			Command{Verb: "autodoc", Args: []string{"car", "cdr"}},
			"(geiser:autodoc '(car cdr) (current-module))",
		},
		"AutodocInModule": {
			Command{Verb: "autodoc", Module: "mine", Args: []string{"f"}},
			"(geiser:autodoc '(f) 'mine)",
		},
		"Completions": {
			Command{Verb: "completions", Args: []string{"str"}},
			`(geiser:completions "str")`,
		},
		"ModuleCompletions": {
			Command{Verb: "module-completions", Args: []string{"srfi"}},
			`(geiser:module-completions "srfi")`,
		},
		"NoValues": {
			Command{Verb: "no-values"},
			"(geiser:no-values)",
		},
		"SymbolLocationUnsupported": {
			Command{Verb: "symbol-location", Args: []string{"car"}},
			"(geiser:no-values)",
		},
		"GenericForward": {
			Command{Verb: "module-exports", Args: []string{"'srfi-1"}},
			"(geiser:module-exports 'srfi-1)",
		},
		"GenericNoArgs": {
			Command{Verb: "ping"},
			"(geiser:ping)",
		},
		"GenericMultiArgs": {
			Command{Verb: "symbol-documentation", Args: []string{"'car", "'srfi-1"}},
			"(geiser:symbol-documentation 'car 'srfi-1)",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := c.cmd.Expression(); got != c.want {
				t.Errorf("%v translated to %s, want %s", c.cmd, got, c.want)
			}
		})
	}
}
