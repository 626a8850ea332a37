package stklos

import "fmt"

// Eval evaluates expr in env. Errors are *EvalError values; they are
// meant to be caught at the responder boundary, not to escape to the
// connection loop.
func (vm *VM) Eval(expr Value, env *Env) (Value, error) {
	switch x := expr.(type) {
	case nil:
		return nil, NewEvalError("cannot evaluate the empty list")
	case *Symbol:
		v, ok := env.Lookup(x)
		if !ok {
			return nil, NewEvalError("unbound variable:", x)
		}
		if _, isMacro := v.(*Macro); isMacro {
			return nil, NewEvalError("syntax keyword used as variable:", x)
		}
		return v, nil
	case *Pair:
		return vm.evalForm(x, env)
	default:
		// Numbers, strings, booleans, and everything else are
		// self-evaluating.
		return expr, nil
	}
}

// DoString parses src and evaluates each expression in the current
// module, returning the value of the last one.
func (vm *VM) DoString(src string) (Value, error) {
	exprs, err := ParseString(src)
	if err != nil {
		return nil, NewEvalError(err.Error())
	}
	var last Value = Void
	for _, e := range exprs {
		last, err = vm.Eval(e, vm.Current.Top())
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// MustDoString is DoString for initialization code that cannot fail.
func (vm *VM) MustDoString(src string) Value {
	v, err := vm.DoString(src)
	if err != nil {
		panic(fmt.Sprintf("stklos: init: %v", err))
	}
	return v
}

func (vm *VM) evalForm(form *Pair, env *Env) (Value, error) {
	if head, ok := form.Car.(*Symbol); ok {
		switch head {
		case symQuote:
			return cadr(form), nil
		case symQuasiquote:
			return vm.quasi(cadr(form), env)
		case symIf:
			return vm.evalIf(form, env)
		case symDefine:
			return vm.evalDefine(form, env)
		case symLambda:
			return vm.makeClosure("", cadr(form), cddrSlice(form), env), nil
		case symSet:
			return vm.evalSet(form, env)
		case symBegin:
			return vm.evalSeq(restSlice(form), env)
		case symLet:
			return vm.evalLet(form, env)
		case symAnd:
			return vm.evalAnd(restSlice(form), env)
		case symOr:
			return vm.evalOr(restSlice(form), env)
		case symDefineModule:
			return vm.evalDefineModule(form, env)
		case symInModule:
			return vm.evalInModule(form, env)
		case symExport:
			return vm.evalExport(form, env)
		}
		if v, ok := env.Lookup(head); ok {
			if mac, isMacro := v.(*Macro); isMacro {
				expanded, err := mac.Expand(vm, form, env)
				if err != nil {
					return nil, err
				}
				return vm.Eval(expanded, env)
			}
		}
	}
	return vm.evalApply(form, env)
}

func (vm *VM) evalIf(form *Pair, env *Env) (Value, error) {
	args, _ := ListToSlice(form.Cdr)
	if len(args) < 2 || len(args) > 3 {
		return nil, NewEvalError("bad if form:", form)
	}
	c, err := vm.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if isTrue(c) {
		return vm.Eval(args[1], env)
	}
	if len(args) == 3 {
		return vm.Eval(args[2], env)
	}
	return Void, nil
}

func (vm *VM) evalDefine(form *Pair, env *Env) (Value, error) {
	target := cadr(form)
	switch t := target.(type) {
	case *Symbol:
		// (define name expr)
		var v Value = Void
		if rest, ok := form.Cdr.(*Pair); ok {
			if body, ok := rest.Cdr.(*Pair); ok {
				val, err := vm.Eval(body.Car, env)
				if err != nil {
					return nil, err
				}
				v = val
			}
		}
		if c, ok := v.(*Closure); ok && c.Name == "" {
			c.Name = t.Name
		}
		vm.defineIn(env, t, v)
		return Void, nil
	case *Pair:
		// (define (name . formals) body...)
		name, ok := t.Car.(*Symbol)
		if !ok {
			return nil, NewEvalError("bad define form:", form)
		}
		body := cddrSlice(form)
		c := vm.makeClosure(name.Name, t.Cdr, body, env)
		vm.defineIn(env, name, c)
		return Void, nil
	}
	return nil, NewEvalError("bad define form:", form)
}

// defineIn installs a binding, routing top-level definitions to the
// module so they appear in introspection.
func (vm *VM) defineIn(env *Env, sym *Symbol, v Value) {
	if env == env.Module().Top() {
		env.Module().Define(sym, v)
		return
	}
	env.Define(sym, v)
}

// makeClosure builds a closure, peeling a leading docstring when more
// of the body follows it.
func (vm *VM) makeClosure(name string, formals Value, body []Value, env *Env) *Closure {
	doc := ""
	if len(body) > 1 {
		if s, ok := body[0].(string); ok {
			doc = s
			body = body[1:]
		}
	}
	return &Closure{
		Name:    name,
		Formals: formals,
		Body:    body,
		Env:     env,
		Doc:     doc,
		Home:    env.Module(),
	}
}

func (vm *VM) evalSet(form *Pair, env *Env) (Value, error) {
	sym, ok := cadr(form).(*Symbol)
	if !ok {
		return nil, NewEvalError("bad set! form:", form)
	}
	v, err := vm.Eval(caddr(form), env)
	if err != nil {
		return nil, err
	}
	if !env.Set(sym, v) {
		return nil, NewEvalError("set!: unbound variable:", sym)
	}
	return Void, nil
}

func (vm *VM) evalSeq(body []Value, env *Env) (Value, error) {
	var last Value = Void
	for _, e := range body {
		v, err := vm.Eval(e, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (vm *VM) evalLet(form *Pair, env *Env) (Value, error) {
	bindings, ok := ListToSlice(cadr(form))
	if !ok {
		return nil, NewEvalError("bad let form:", form)
	}
	inner := NewEnv(env)
	for _, b := range bindings {
		p, ok := b.(*Pair)
		if !ok {
			return nil, NewEvalError("bad let binding:", b)
		}
		sym, ok := p.Car.(*Symbol)
		if !ok {
			return nil, NewEvalError("bad let binding:", b)
		}
		v, err := vm.Eval(cadr(p), env)
		if err != nil {
			return nil, err
		}
		inner.Define(sym, v)
	}
	return vm.evalSeq(cddrSlice(form), inner)
}

func (vm *VM) evalAnd(args []Value, env *Env) (Value, error) {
	var last Value = true
	for _, e := range args {
		v, err := vm.Eval(e, env)
		if err != nil {
			return nil, err
		}
		if !isTrue(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func (vm *VM) evalOr(args []Value, env *Env) (Value, error) {
	for _, e := range args {
		v, err := vm.Eval(e, env)
		if err != nil {
			return nil, err
		}
		if isTrue(v) {
			return v, nil
		}
	}
	return false, nil
}

func (vm *VM) evalDefineModule(form *Pair, env *Env) (Value, error) {
	name := cadr(form)
	if name == nil {
		return nil, NewEvalError("bad define-module form:", form)
	}
	m := vm.EnsureModule(DisplayString(name))
	prev := vm.Current
	vm.Current = m
	defer func() { vm.Current = prev }()
	_, err := vm.evalSeq(cddrSlice(form), m.Top())
	if err != nil {
		return nil, err
	}
	return Void, nil
}

// evalInModule switches the current module for the rest of the session
// (or, under the responder, the rest of the request). The module is
// created if it does not exist yet.
func (vm *VM) evalInModule(form *Pair, env *Env) (Value, error) {
	name := cadr(form)
	if name == nil {
		return nil, NewEvalError("bad in-module form:", form)
	}
	vm.Current = vm.EnsureModule(DisplayString(name))
	return Void, nil
}

func (vm *VM) evalExport(form *Pair, env *Env) (Value, error) {
	names, ok := ListToSlice(form.Cdr)
	if !ok {
		return nil, NewEvalError("bad export form:", form)
	}
	for _, n := range names {
		sym, ok := n.(*Symbol)
		if !ok {
			return nil, NewEvalError("export: not a symbol:", n)
		}
		env.Module().Export(sym)
	}
	return Void, nil
}

func (vm *VM) evalApply(form *Pair, env *Env) (Value, error) {
	fn, err := vm.Eval(form.Car, env)
	if err != nil {
		return nil, err
	}
	argExprs, ok := ListToSlice(form.Cdr)
	if !ok {
		return nil, NewEvalError("bad application:", form)
	}
	args := make([]Value, len(argExprs))
	for i, e := range argExprs {
		if args[i], err = vm.Eval(e, env); err != nil {
			return nil, err
		}
	}
	return vm.Apply(fn, args)
}

// Apply calls a procedure value with the given arguments.
func (vm *VM) Apply(fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case *Primitive:
		return f.Fn(vm, args)
	case *Closure:
		env := NewEnv(f.Env)
		required, rest := Properize(f.Formals)
		if len(args) < len(required) || (!rest && len(args) > len(required)) {
			return nil, NewEvalError("wrong number of arguments for", Intern(closureLabel(f)))
		}
		for i, p := range required {
			sym, ok := p.(*Symbol)
			if !ok {
				return nil, NewEvalError("bad formal parameter:", p)
			}
			env.Define(sym, args[i])
		}
		if rest {
			if sym, ok := restSymbol(f.Formals); ok {
				env.Define(sym, List(args[len(required):]...))
			}
		}
		return vm.evalSeq(f.Body, env)
	}
	return nil, NewEvalError("not a procedure:", fn)
}

// quasi expands a quasiquote template one level deep.
func (vm *VM) quasi(tmpl Value, env *Env) (Value, error) {
	p, ok := tmpl.(*Pair)
	if !ok {
		return tmpl, nil
	}
	if head, ok := p.Car.(*Symbol); ok && head == symUnquote {
		return vm.Eval(cadr(p), env)
	}
	var out Value
	tail := &out
	for {
		if inner, ok := p.Car.(*Pair); ok {
			if head, ok := inner.Car.(*Symbol); ok && head == symUnquoteSplic {
				spliced, err := vm.Eval(cadr(inner), env)
				if err != nil {
					return nil, err
				}
				items, _ := ListToSlice(spliced)
				for _, v := range items {
					cell := &Pair{Car: v}
					*tail = cell
					tail = &cell.Cdr
				}
				if next, ok := p.Cdr.(*Pair); ok {
					p = next
					continue
				}
				return out, nil
			}
		}
		v, err := vm.quasi(p.Car, env)
		if err != nil {
			return nil, err
		}
		cell := &Pair{Car: v}
		*tail = cell
		tail = &cell.Cdr
		switch cdr := p.Cdr.(type) {
		case nil:
			return out, nil
		case *Pair:
			p = cdr
		default:
			v, err := vm.quasi(cdr, env)
			if err != nil {
				return nil, err
			}
			*tail = v
			return out, nil
		}
	}
}

// restSymbol finds the rest parameter name in an improper formal list.
func restSymbol(formals Value) (*Symbol, bool) {
	for {
		switch f := formals.(type) {
		case *Pair:
			formals = f.Cdr
		case *Symbol:
			return f, true
		default:
			return nil, false
		}
	}
}

func isTrue(v Value) bool {
	return v != false
}

func cadr(v Value) Value {
	if p, ok := v.(*Pair); ok {
		if q, ok := p.Cdr.(*Pair); ok {
			return q.Car
		}
	}
	return nil
}

func caddr(v Value) Value {
	if p, ok := v.(*Pair); ok {
		return cadr(p.Cdr)
	}
	return nil
}

// restSlice returns the elements after the head of a form.
func restSlice(form *Pair) []Value {
	items, _ := ListToSlice(form.Cdr)
	return items
}

// cddrSlice returns the elements after the first two of a form.
func cddrSlice(form *Pair) []Value {
	items := restSlice(form)
	if len(items) < 1 {
		return nil
	}
	return items[1:]
}
