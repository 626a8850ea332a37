package stklos

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gitlab.com/variadico/lctime"
)

/*
This file implements the uniform reply envelope of the Geiser protocol.
Every request evaluates to exactly one printed S-expression:

	((result "v1" "v2" ...) (output . "captured output"))

on success, or

	((error (key . "message")))

when evaluation raised. The error structure bypasses the result/output
envelope entirely.
*/

var (
	symGeiserEval = Intern("geiser:eval")
	symModules    = Intern("modules")
	symProcs      = Intern("procs")
	symSyntax     = Intern("syntax")
	symVars       = Intern("vars")
	symSignature  = Intern("signature")
	symDocstring  = Intern("docstring")
)

// EvalRequest answers one editor request. A (geiser:eval module form)
// request evaluates form inside the named module; any other request
// form evaluates as-is in the current module. Either way the reply is
// an envelope, so evaluation errors never escape to the caller.
func (vm *VM) EvalRequest(request Value) Value {
	if p, ok := request.(*Pair); ok {
		if head, ok := p.Car.(*Symbol); ok && head == symGeiserEval {
			args := restSlice(p)
			if len(args) == 2 {
				mod, err := vm.requestModuleName(args[0])
				if err != nil {
					return ErrorEnvelope(err)
				}
				form, err := vm.unquoteArg(args[1])
				if err != nil {
					return ErrorEnvelope(err)
				}
				return vm.evalCapture(mod, form)
			}
		}
	}
	return vm.evalCapture(vm.Current.Name, request)
}

// EvalIn parses src and evaluates it inside the named module, capturing
// output into the envelope. An empty module name means the default
// top-level module.
func (vm *VM) EvalIn(module, src string) Value {
	exprs, err := ParseString(src)
	if err != nil {
		return ErrorEnvelope(err)
	}
	if len(exprs) == 0 {
		return vm.evalCapture(module, List(symQuote, Void))
	}
	reply := Value(nil)
	for _, e := range exprs {
		reply = vm.evalCapture(module, e)
		if IsErrorEnvelope(reply) {
			return reply
		}
	}
	return reply
}

// evalCapture is the eval wrapper: resolve the module (falling back to
// the default), evaluate with all output captured, and normalize the
// outcome into the envelope.
func (vm *VM) evalCapture(module string, form Value) Value {
	m := vm.FindModule(module)
	buf := bytes.Buffer{}
	oldOut, oldCur := vm.Stdout, vm.Current
	vm.Stdout = &buf
	vm.Current = m
	v, err := vm.Eval(form, m.Top())
	vm.Stdout = oldOut
	vm.Current = oldCur
	if err != nil {
		return ErrorEnvelope(err)
	}
	var results []string
	switch x := v.(type) {
	case voidType:
		// No value.
	case *Values:
		for _, v := range x.Vals {
			results = append(results, WriteString(v))
		}
	default:
		results = append(results, WriteString(v))
	}
	if len(results) == 0 {
		// Historical quirk of the protocol: when the call produced no
		// explicit value, the captured output stands in as the result.
		results = append(results, buf.String())
	}
	return Envelope(results, buf.String())
}

// Envelope builds a success reply from printed result strings and the
// captured output.
func Envelope(results []string, output string) Value {
	vals := make([]Value, len(results))
	for i, r := range results {
		vals[i] = r
	}
	return List(
		Cons(symResult, List(vals...)),
		Cons(symOutput, output),
	)
}

// ErrorEnvelope builds an error reply. It carries only the message; no
// result or output fields survive an error.
func ErrorEnvelope(err error) Value {
	return List(List(symError, Cons(symKey, err.Error())))
}

// IsErrorEnvelope reports whether reply is an error structure.
func IsErrorEnvelope(reply Value) bool {
	p, ok := reply.(*Pair)
	if !ok {
		return false
	}
	inner, ok := p.Car.(*Pair)
	if !ok {
		return false
	}
	return inner.Car == symError
}

// WriteReply prints reply as one S-expression followed by the blank
// line that terminates it on the wire, duplicating to the VM's log sink
// when one is configured.
func WriteReply(w io.Writer, vm *VM, reply Value) error {
	text := WriteString(reply)
	if vm.Log != nil {
		vm.Log.Record("reply", text)
	}
	_, err := fmt.Fprintf(w, "%s\n\n", text)
	return err
}

// requestModuleName extracts the module argument of a geiser:eval
// request: a quoted symbol, a bare symbol, or #f for "no module".
func (vm *VM) requestModuleName(arg Value) (string, error) {
	v, err := vm.unquoteArg(arg)
	if err != nil {
		return "", err
	}
	switch m := v.(type) {
	case nil:
		return "", nil
	case bool:
		if !m {
			return "", nil
		}
	case *Symbol:
		return m.Name, nil
	case *Pair:
		return DisplayString(m), nil
	}
	return "", NewEvalError("bad module designator:", v)
}

// unquoteArg strips one level of quote from a request argument,
// evaluating nothing.
func (vm *VM) unquoteArg(arg Value) (Value, error) {
	p, ok := arg.(*Pair)
	if !ok {
		return arg, nil
	}
	if head, ok := p.Car.(*Symbol); ok && head == symQuote {
		return cadr(p), nil
	}
	return arg, nil
}

// A ProtocolLog duplicates every request and reply to a file, flushing
// immediately after each write so a wedged session still leaves a
// usable trace.
type ProtocolLog struct {
	w    *bufio.Writer
	file *os.File
}

// NewProtocolLog opens (appending) or creates the log file at path.
func NewProtocolLog(path string) (*ProtocolLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &ProtocolLog{w: bufio.NewWriter(f), file: f}, nil
}

// Record writes one timestamped protocol event and flushes.
func (l *ProtocolLog) Record(dir, text string) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.w, "[%s] %s: %s\n", lctime.Strftime("%c", time.Now()), dir, text)
	l.w.Flush()
}

// Close flushes and closes the underlying file.
func (l *ProtocolLog) Close() error {
	if l == nil {
		return nil
	}
	l.w.Flush()
	return l.file.Close()
}
