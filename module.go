package stklos

// An Env is a lexical environment frame. The chain of parents ends at a
// module's top-level frame.
type Env struct {
	vars   map[*Symbol]Value
	parent *Env
	module *Module
}

// NewEnv creates a child frame of parent.
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[*Symbol]Value{}, parent: parent, module: parent.module}
}

// Lookup finds the binding for sym, searching enclosing frames and
// finally the frame's module.
func (e *Env) Lookup(sym *Symbol) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[sym]; ok {
			return v, true
		}
	}
	return e.module.Lookup(sym)
}

// Define binds sym in this frame.
func (e *Env) Define(sym *Symbol, v Value) {
	e.vars[sym] = v
}

// Set assigns to an existing binding, searching like Lookup. It reports
// whether a binding was found.
func (e *Env) Set(sym *Symbol, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[sym]; ok {
			f.vars[sym] = v
			return true
		}
	}
	for mod := e.module; mod != nil; mod = mod.parent {
		if _, ok := mod.SymbolValue(sym); ok {
			mod.Define(sym, v)
			return true
		}
	}
	return false
}

// Module returns the module the frame belongs to.
func (e *Env) Module() *Module {
	return e.module
}

// A Module is a named namespace of top-level bindings with a declared
// export list. Binding and export order are preserved as discovered.
type Module struct {
	Name     string
	bindings map[*Symbol]Value
	order    []*Symbol
	exports  []*Symbol
	exported map[*Symbol]bool
	top      *Env
	// parent is consulted by Lookup when a symbol is not bound here.
	// Every module other than the default one chains to it.
	parent *Module
}

func newModule(name string) *Module {
	m := &Module{
		Name:     name,
		bindings: map[*Symbol]Value{},
		exported: map[*Symbol]bool{},
	}
	m.top = &Env{vars: map[*Symbol]Value{}, module: m}
	return m
}

// Top returns the module's top-level environment frame.
func (m *Module) Top() *Env {
	return m.top
}

// Define binds sym at the module's top level, recording discovery order
// on first definition.
func (m *Module) Define(sym *Symbol, v Value) {
	if _, ok := m.bindings[sym]; !ok {
		m.order = append(m.order, sym)
	}
	m.bindings[sym] = v
}

// SymbolValue returns the value bound to sym in the module itself,
// without consulting the module chain.
func (m *Module) SymbolValue(sym *Symbol) (Value, bool) {
	v, ok := m.bindings[sym]
	return v, ok
}

// Lookup resolves sym in the module, then along the module chain.
func (m *Module) Lookup(sym *Symbol) (Value, bool) {
	for mod := m; mod != nil; mod = mod.parent {
		if v, ok := mod.bindings[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// SymbolValueOr returns the value bound to sym, or def when sym is
// unbound. Passing the Unbound sentinel as def lets callers distinguish
// macro keywords from real bindings without raising.
func (m *Module) SymbolValueOr(sym *Symbol, def Value) Value {
	if v, ok := m.bindings[sym]; ok {
		return v
	}
	return def
}

// Export adds names to the module's export list, preserving order and
// ignoring duplicates.
func (m *Module) Export(syms ...*Symbol) {
	for _, s := range syms {
		if !m.exported[s] {
			m.exported[s] = true
			m.exports = append(m.exports, s)
		}
	}
}

// Exports returns the declared export list in declaration order.
func (m *Module) Exports() []*Symbol {
	return m.exports
}

// Symbols returns every bound symbol in discovery order.
func (m *Module) Symbols() []*Symbol {
	return m.order
}
