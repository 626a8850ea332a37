package stklos

// initGeiser binds the responder procedures the editor invokes by name.
// Every one of them degrades to a sentinel or an *EvalError; none may
// panic, since the request loop has no recovery of its own.
func (vm *VM) initGeiser() {
	prims := map[string]func(vm *VM, args []Value) (Value, error){
		"geiser:eval":                 geiserEval,
		"geiser:no-values":            geiserNoValues,
		"geiser:load-file":            geiserLoadFile,
		"geiser:add-to-load-path":     geiserAddToLoadPath,
		"geiser:completions":          geiserCompletions,
		"geiser:module-completions":   geiserModuleCompletions,
		"geiser:module-exports":       geiserModuleExports,
		"geiser:symbol-documentation": geiserSymbolDocumentation,
		"geiser:autodoc":              geiserAutodoc,
		"geiser:macroexpand":          geiserMacroexpand,
		"geiser:start-logging!":       geiserStartLogging,
		"geiser:stop-logging!":        geiserStopLogging,
	}
	for name, fn := range prims {
		vm.DefinePrimitive(name, fn)
	}
}

// designatorName accepts a module designator in any of the forms the
// editor sends: a symbol, a string, a name list, or #f for "no module".
func designatorName(v Value) string {
	switch m := v.(type) {
	case nil:
		return ""
	case bool:
		return ""
	case *Symbol:
		return m.Name
	case string:
		return m
	case *Pair:
		return DisplayString(m)
	}
	return ""
}

func geiserEval(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:eval", args, 2); err != nil {
		return nil, err
	}
	return vm.evalCapture(designatorName(args[0]), args[1]), nil
}

func geiserNoValues(vm *VM, args []Value) (Value, error) {
	return Void, nil
}

func geiserLoadFile(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:load-file", args, 1); err != nil {
		return nil, err
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("geiser:load-file: not a string:", args[0])
	}
	if err := vm.LoadFile(name); err != nil {
		return nil, err
	}
	return Void, nil
}

func geiserAddToLoadPath(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:add-to-load-path", args, 1); err != nil {
		return nil, err
	}
	dir, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("geiser:add-to-load-path: not a string:", args[0])
	}
	if err := vm.AddLoadPath(dir); err != nil {
		return nil, err
	}
	return true, nil
}

func geiserCompletions(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:completions", args, 1); err != nil {
		return nil, err
	}
	prefix, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("geiser:completions: not a string:", args[0])
	}
	return stringList(vm.CompleteSymbols(prefix)), nil
}

func geiserModuleCompletions(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:module-completions", args, 1); err != nil {
		return nil, err
	}
	prefix, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("geiser:module-completions: not a string:", args[0])
	}
	return stringList(vm.CompleteModuleNames(prefix)), nil
}

func geiserModuleExports(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:module-exports", args, 1); err != nil {
		return nil, err
	}
	return vm.ModuleExports(designatorName(args[0])), nil
}

func geiserSymbolDocumentation(vm *VM, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NewEvalError("geiser:symbol-documentation: expected 1 or 2 arguments")
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return nil, NewEvalError("geiser:symbol-documentation: not a symbol:", args[0])
	}
	module := vm.Current.Name
	if len(args) == 2 {
		module = designatorName(args[1])
	}
	return vm.SymbolDocumentation(module, sym.Name), nil
}

func geiserAutodoc(vm *VM, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NewEvalError("geiser:autodoc: expected 1 or 2 arguments")
	}
	items, ok := ListToSlice(args[0])
	if !ok {
		return nil, NewEvalError("geiser:autodoc: not a list:", args[0])
	}
	names := make([]string, 0, len(items))
	for _, v := range items {
		if s, ok := v.(*Symbol); ok {
			names = append(names, s.Name)
		}
	}
	module := vm.Current.Name
	if len(args) == 2 {
		module = designatorName(args[1])
	}
	return vm.Autodoc(names, module), nil
}

// geiserMacroexpand expands the outermost macro of a form once. Forms
// that are not macro invocations come back unchanged.
func geiserMacroexpand(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:macroexpand", args, 1); err != nil {
		return nil, err
	}
	form, ok := args[0].(*Pair)
	if !ok {
		return args[0], nil
	}
	head, ok := form.Car.(*Symbol)
	if !ok {
		return form, nil
	}
	v, ok := vm.Current.Lookup(head)
	if !ok {
		return form, nil
	}
	mac, ok := v.(*Macro)
	if !ok {
		return form, nil
	}
	return mac.Expand(vm, form, vm.Current.Top())
}

func geiserStartLogging(vm *VM, args []Value) (Value, error) {
	if err := wantArgs("geiser:start-logging!", args, 1); err != nil {
		return nil, err
	}
	path, ok := args[0].(string)
	if !ok {
		return nil, NewEvalError("geiser:start-logging!: not a string:", args[0])
	}
	log, err := NewProtocolLog(path)
	if err != nil {
		return nil, NewEvalError("geiser:start-logging!: " + err.Error())
	}
	if vm.Log != nil {
		vm.Log.Close()
	}
	vm.Log = log
	return Void, nil
}

func geiserStopLogging(vm *VM, args []Value) (Value, error) {
	if vm.Log != nil {
		vm.Log.Close()
		vm.Log = nil
	}
	return Void, nil
}

func stringList(items []string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = s
	}
	return List(vals...)
}
