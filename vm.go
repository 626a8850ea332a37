package stklos

import (
	"io"
	"os"
	"sort"
)

// DefaultModule is the name of the top-level module evaluation falls
// back to when no module is given or the given name does not resolve.
const DefaultModule = "stklos"

// VM is a runtime instance: the module registry, the load path, the
// output port, and the optional protocol log sink. All responder state
// lives here; there are no package-level globals besides the symbol
// table.
type VM struct {
	// STklos is the default top-level module.
	STklos *Module
	// Current is the module symbol completion and bare evaluation use.
	// Autodoc's lexical module resolution happens on the editor side,
	// so the two can legitimately disagree.
	Current *Module

	// Stdout is where display and friends write. EvalIn swaps it for a
	// capture buffer for the duration of a request.
	Stdout io.Writer

	// LoadPath is the ordered list of directory prefixes consulted by
	// load-file requests. AddLoadPath prepends.
	LoadPath []string

	// Log is the optional protocol log sink. When non-nil, every
	// request and reply is duplicated to it.
	Log *ProtocolLog

	modules map[string]*Module
	order   []string

	classify classifier
}

// NewVM prepares a runtime with the STklos module, the standard
// primitives, and the geiser responder procedures. The export
// classifier is selected once here from the runtime version.
func NewVM() *VM {
	vm := &VM{
		Stdout:  os.Stdout,
		modules: make(map[string]*Module),
	}
	vm.STklos = vm.EnsureModule(DefaultModule)
	vm.Current = vm.STklos
	vm.classify = selectClassifier(Version)
	vm.initPrimitives()
	vm.initGeiser()
	return vm
}

// EnsureModule returns the module with the given name, creating it if
// needed.
func (vm *VM) EnsureModule(name string) *Module {
	if m, ok := vm.modules[name]; ok {
		return m
	}
	m := newModule(name)
	if vm.STklos != nil {
		m.parent = vm.STklos
	}
	vm.modules[name] = m
	vm.order = append(vm.order, name)
	return m
}

// FindModule resolves a module by name. An empty or unknown name
// resolves to the default top-level module rather than failing.
func (vm *VM) FindModule(name string) *Module {
	if name == "" {
		return vm.STklos
	}
	if m, ok := vm.modules[name]; ok {
		return m
	}
	return vm.STklos
}

// LookupModule resolves a module by name without the default fallback.
func (vm *VM) LookupModule(name string) (*Module, bool) {
	m, ok := vm.modules[name]
	return m, ok
}

// ModuleNames returns the printed names of every loaded module in load
// order.
func (vm *VM) ModuleNames() []string {
	names := make([]string, len(vm.order))
	copy(names, vm.order)
	return names
}

// SortedModuleNames returns the printed names of every loaded module in
// lexical order.
func (vm *VM) SortedModuleNames() []string {
	names := vm.ModuleNames()
	sort.Strings(names)
	return names
}

// DefinePrimitive binds a Go function as a procedure in the STklos
// module and exports it.
func (vm *VM) DefinePrimitive(name string, fn func(vm *VM, args []Value) (Value, error)) {
	sym := Intern(name)
	vm.STklos.Define(sym, &Primitive{Name: name, Fn: fn})
	vm.STklos.Export(sym)
}

// DefineSyntax binds a macro keyword in the STklos module and exports
// it.
func (vm *VM) DefineSyntax(name string, expand func(vm *VM, form *Pair, env *Env) (Value, error)) {
	sym := Intern(name)
	vm.STklos.Define(sym, &Macro{Name: name, Expand: expand})
	vm.STklos.Export(sym)
}
