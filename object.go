package stklos

import (
	"fmt"
	"strings"
)

// voidType is the type of the Void value.
type voidType struct{}

// Void is the value of expressions that return nothing, such as define
// and set!. It prints as nothing and is never part of a result envelope.
var Void = voidType{}

// unboundType is the type of the Unbound sentinel.
type unboundType struct{}

// Unbound is the sentinel returned by symbol lookups performed with a
// default, distinguishing "no binding" from any real value without
// raising. Export classification relies on it to recognize macro
// keywords on older runtimes.
var Unbound = unboundType{}

// A Closure is a user-defined procedure. Formals is the live formal
// parameter list exactly as written, so an improper list marks a
// variadic procedure; signature reconstruction reads it directly.
type Closure struct {
	Name    string
	Formals Value
	Body    []Value
	Env     *Env
	Doc     string
	Home    *Module
}

// Fn is the signature of Go functions implementing primitives.
type Fn = func(vm *VM, args []Value) (Value, error)

// A Primitive is a procedure implemented in Go. Primitives carry no
// formal parameter metadata, so their reconstructed signature is the
// empty-string sentinel.
type Primitive struct {
	Name string
	Fn   Fn
}

// A Macro is a syntax keyword. Applying it rewrites the whole form
// before evaluation.
type Macro struct {
	Name   string
	Expand func(vm *VM, form *Pair, env *Env) (Value, error)
}

// Values holds the results of an expression returning zero or more
// values at once. Single-value expressions return the value directly,
// never a Values.
type Values struct {
	Vals []Value
}

// IsProcedure reports whether v answers the procedure? predicate.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *Closure, *Primitive:
		return true
	}
	return false
}

// An EvalError is an error raised by Scheme evaluation. It is caught at
// the responder boundary and reported inside an error structure rather
// than crashing the request loop.
type EvalError struct {
	Message   string
	Irritants []Value
}

// NewEvalError constructs an EvalError with the given irritants.
func NewEvalError(msg string, irritants ...Value) *EvalError {
	return &EvalError{Message: msg, Irritants: irritants}
}

// Error returns the error message followed by its printed irritants.
func (e *EvalError) Error() string {
	if len(e.Irritants) == 0 {
		return e.Message
	}
	b := strings.Builder{}
	b.WriteString(e.Message)
	for _, v := range e.Irritants {
		fmt.Fprintf(&b, " %s", WriteString(v))
	}
	return b.String()
}
