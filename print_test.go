package stklos

import (
	"strings"
	"testing"
)

// TestWriteString tests read-back-compatible printing.
func TestWriteString(t *testing.T) {
	cases := map[string]struct {
		v    Value
		want string
	}{
		"Empty":    {nil, "()"},
		"Symbol":   {Intern("car"), "car"},
		"String":   {"hi", `"hi"`},
		"Escaped":  {"a\"b\nc", `"a\"b\nc"`},
		"Int":      {int64(42), "42"},
		"Float":    {1.5, "1.5"},
		"Whole":    {2.0, "2.0"},
		"True":     {true, "#t"},
		"False":    {false, "#f"},
		"Void":     {Void, "#void"},
		"Unbound":  {Unbound, "#[unbound]"},
		"List":     {List(int64(1), int64(2)), "(1 2)"},
		"Dotted":   {Cons(Intern("a"), Intern("b")), "(a . b)"},
		"Improper": {Cons(Intern("a"), Cons(Intern("b"), Intern("c"))), "(a b . c)"},
		"NestedStr": {List("x"), `("x")`},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := WriteString(c.v); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

// TestDisplayString tests that display drops string quoting but keeps
// structure.
func TestDisplayString(t *testing.T) {
	cases := map[string]struct {
		v    Value
		want string
	}{
		"String": {"hi", "hi"},
		"List":   {List("a", Intern("b")), "(a b)"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := DisplayString(c.v); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

// TestWriteCycle tests that the printer terminates on circular
// structure instead of recursing forever.
func TestWriteCycle(t *testing.T) {
	p := Cons(Intern("a"), nil)
	p.Cdr = p
	got := WriteString(p)
	if !strings.Contains(got, "#[circular]") {
		t.Errorf("circular list printed as %s", got)
	}
	q := Cons(Intern("a"), nil)
	q.Car = q
	got = WriteString(q)
	if !strings.Contains(got, "#[circular]") {
		t.Errorf("self-car pair printed as %s", got)
	}
}

// TestWriteProcedures tests the opaque procedure representations.
func TestWriteProcedures(t *testing.T) {
	v, ok := testVM.STklos.SymbolValue(Intern("car"))
	if !ok {
		t.Fatal("car is not bound")
	}
	if got := WriteString(v); got != "#[subr car]" {
		t.Errorf("car printed as %s", got)
	}
	vm := NewVM()
	vm.MustDoString("(define (f x) x)")
	v, _ = vm.STklos.SymbolValue(Intern("f"))
	if got := WriteString(v); got != "#[closure f]" {
		t.Errorf("closure printed as %s", got)
	}
}
