package stklos

import (
	"fmt"
	"strconv"
)

// initPrimitives binds the standard procedures and syntax the responder
// and its tests rely on. The set is intentionally small; the runtime
// model exists to give introspection real bindings, not to be a full
// Scheme.
func (vm *VM) initPrimitives() {
	prims := map[string]func(vm *VM, args []Value) (Value, error){
		"+":              primAdd,
		"-":              primSub,
		"*":              primMul,
		"=":              primNumEq,
		"<":              primNumLt,
		">":              primNumGt,
		"car":            primCar,
		"cdr":            primCdr,
		"cons":           primCons,
		"list":           primList,
		"length":         primLength,
		"not":            primNot,
		"eq?":            primEq,
		"equal?":         primEqual,
		"null?":          primNull,
		"pair?":          primPair,
		"procedure?":     primProcedure,
		"symbol?":        primSymbol,
		"string?":        primString,
		"string-append":  primStringAppend,
		"symbol->string": primSymbolToString,
		"string->symbol": primStringToSymbol,
		"number->string": primNumberToString,
		"display":        primDisplay,
		"write":          primWrite,
		"newline":        primNewline,
		"values":         primValues,
		"apply":          primApply,
		"error":          primError,
		"current-module": primCurrentModule,
		"version":        primVersion,
	}
	for name, fn := range prims {
		vm.DefinePrimitive(name, fn)
	}

	vm.DefineSyntax("when", expandWhen)
	vm.DefineSyntax("unless", expandUnless)
}

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return NewEvalError(fmt.Sprintf("%s: expected %d arguments, got %d", name, n, len(args)))
	}
	return nil
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func numResult(f float64, exact bool) Value {
	if exact && f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

func primAdd(vm *VM, args []Value) (Value, error) {
	sum, exact := 0.0, true
	for _, a := range args {
		f, ok := asFloat(a)
		if !ok {
			return nil, NewEvalError("+: not a number:", a)
		}
		if _, isInt := a.(int64); !isInt {
			exact = false
		}
		sum += f
	}
	return numResult(sum, exact), nil
}

func primSub(vm *VM, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, NewEvalError("-: expected at least 1 argument")
	}
	acc, exact := 0.0, true
	for i, a := range args {
		f, ok := asFloat(a)
		if !ok {
			return nil, NewEvalError("-: not a number:", a)
		}
		if _, isInt := a.(int64); !isInt {
			exact = false
		}
		if i == 0 {
			acc = f
		} else {
			acc -= f
		}
	}
	if len(args) == 1 {
		acc = -acc
	}
	return numResult(acc, exact), nil
}

func primMul(vm *VM, args []Value) (Value, error) {
	prod, exact := 1.0, true
	for _, a := range args {
		f, ok := asFloat(a)
		if !ok {
			return nil, NewEvalError("*: not a number:", a)
		}
		if _, isInt := a.(int64); !isInt {
			exact = false
		}
		prod *= f
	}
	return numResult(prod, exact), nil
}

func numCompare(name string, args []Value, cmp func(a, b float64) bool) (Value, error) {
	if len(args) < 2 {
		return nil, NewEvalError(name + ": expected at least 2 arguments")
	}
	prev, ok := asFloat(args[0])
	if !ok {
		return nil, NewEvalError(name+": not a number:", args[0])
	}
	for _, a := range args[1:] {
		f, ok := asFloat(a)
		if !ok {
			return nil, NewEvalError(name+": not a number:", a)
		}
		if !cmp(prev, f) {
			return false, nil
		}
		prev = f
	}
	return true, nil
}

func primNumEq(vm *VM, args []Value) (Value, error) {
	return numCompare("=", args, func(a, b float64) bool { return a == b })
}

func primNumLt(vm *VM, args []Value) (Value, error) {
	return numCompare("<", args, func(a, b float64) bool { return a < b })
}

func primNumGt(vm *VM, args []Value) (Value, error) {
	return numCompare(">", args, func(a, b float64) bool { return a > b })
}

func primCar(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("car", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, NewEvalError("car: not a pair:", args[0])
	}
	return p.Car, nil
}

func primCdr(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("cdr", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*Pair)
	if !ok {
		return nil, NewEvalError("cdr: not a pair:", args[0])
	}
	return p.Cdr, nil
}

func primCons(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("cons", args, 2); err != nil {
		return nil, err
	}
	return Cons(args[0], args[1]), nil
}

func primList(vm *VM, args []Value) (Value, error) {
	return List(args...), nil
}

func primLength(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("length", args, 1); err != nil {
		return nil, err
	}
	if _, ok := ListToSlice(args[0]); !ok {
		return nil, NewEvalError("length: not a proper list:", args[0])
	}
	return int64(ListLen(args[0])), nil
}

func primNot(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("not", args, 1); err != nil {
		return nil, err
	}
	return !isTrue(args[0]), nil
}

func primEq(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("eq?", args, 2); err != nil {
		return nil, err
	}
	return args[0] == args[1], nil
}

func primEqual(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("equal?", args, 2); err != nil {
		return nil, err
	}
	return Equal(args[0], args[1]), nil
}

// Equal is structural equality over pairs and atoms.
func Equal(a, b Value) bool {
	pa, aok := a.(*Pair)
	pb, bok := b.(*Pair)
	if aok && bok {
		return Equal(pa.Car, pb.Car) && Equal(pa.Cdr, pb.Cdr)
	}
	if aok || bok {
		return false
	}
	return a == b
}

func primNull(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("null?", args, 1); err != nil {
		return nil, err
	}
	return args[0] == nil, nil
}

func primPair(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("pair?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Pair)
	return ok, nil
}

func primProcedure(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("procedure?", args, 1); err != nil {
		return nil, err
	}
	return IsProcedure(args[0]), nil
}

func primSymbol(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("symbol?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Symbol)
	return ok, nil
}

func primString(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("string?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(string)
	return ok, nil
}

func primStringAppend(vm *VM, args []Value) (Value, error) {
	out := ""
	for _, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, NewEvalError("string-append: not a string:", a)
		}
		out += s
	}
	return out, nil
}

func primSymbolToString(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("symbol->string", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(*Symbol)
	if !ok {
		return nil, NewEvalError("symbol->string: not a symbol:", args[0])
	}
	return s.Name, nil
}

func primStringToSymbol(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("string->symbol", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("string->symbol: not a string:", args[0])
	}
	return Intern(s), nil
}

func primNumberToString(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("number->string", args, 1); err != nil {
		return nil, err
	}
	switch n := args[0].(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		return formatFloat(n), nil
	}
	return nil, NewEvalError("number->string: not a number:", args[0])
}

func primDisplay(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("display", args, 1); err != nil {
		return nil, err
	}
	fmt.Fprint(vm.Stdout, DisplayString(args[0]))
	return Void, nil
}

func primWrite(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("write", args, 1); err != nil {
		return nil, err
	}
	fmt.Fprint(vm.Stdout, WriteString(args[0]))
	return Void, nil
}

func primNewline(vm *VM, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, NewEvalError("newline: expected 0 arguments")
	}
	fmt.Fprintln(vm.Stdout)
	return Void, nil
}

func primValues(vm *VM, args []Value) (Value, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return &Values{Vals: args}, nil
}

func primApply(vm *VM, args []Value) (Value, error) {
	if len(args) < 2 {
		return nil, NewEvalError("apply: expected at least 2 arguments")
	}
	last, ok := ListToSlice(args[len(args)-1])
	if !ok {
		return nil, NewEvalError("apply: last argument is not a list:", args[len(args)-1])
	}
	call := append(append([]Value{}, args[1:len(args)-1]...), last...)
	return vm.Apply(args[0], call)
}

func primError(vm *VM, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, NewEvalError("error")
	}
	msg, ok := args[0].(string)
	if !ok {
		msg = DisplayString(args[0])
	}
	return nil, NewEvalError(msg, args[1:]...)
}

func primCurrentModule(vm *VM, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, NewEvalError("current-module: expected 0 arguments")
	}
	return Intern(vm.Current.Name), nil
}

func primVersion(vm *VM, args []Value) (Value, error) {
	if len(args) != 0 {
		return nil, NewEvalError("version: expected 0 arguments")
	}
	return Version, nil
}

// expandWhen rewrites (when c body...) to (if c (begin body...)).
func expandWhen(vm *VM, form *Pair, env *Env) (Value, error) {
	args := restSlice(form)
	if len(args) < 2 {
		return nil, NewEvalError("bad when form:", form)
	}
	return List(symIf, args[0], Cons(symBegin, List(args[1:]...))), nil
}

// expandUnless rewrites (unless c body...) to (if c #void (begin body...)).
func expandUnless(vm *VM, form *Pair, env *Env) (Value, error) {
	args := restSlice(form)
	if len(args) < 2 {
		return nil, NewEvalError("bad unless form:", form)
	}
	return List(symIf, args[0], List(symQuote, Void), Cons(symBegin, List(args[1:]...))), nil
}
