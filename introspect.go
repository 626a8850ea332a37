package stklos

import (
	"sort"
	"strings"
)

// CompleteModuleNames returns the printed name of every loaded module
// starting with prefix. Matching is an exact, case-sensitive prefix
// comparison; there are no wildcard semantics.
func (vm *VM) CompleteModuleNames(prefix string) []string {
	var out []string
	for _, name := range vm.SortedModuleNames() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// CompleteSymbols returns the name of every symbol visible in the
// currently active module that starts with prefix. Note that this uses
// the VM's current module, not the module the editor resolved
// lexically; the two can disagree, and autodoc follows the editor.
func (vm *VM) CompleteSymbols(prefix string) []string {
	seen := map[string]bool{}
	var out []string
	for m := vm.Current; m != nil; m = m.parent {
		for _, sym := range m.Symbols() {
			if !seen[sym.Name] && strings.HasPrefix(sym.Name, prefix) {
				seen[sym.Name] = true
				out = append(out, sym.Name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// exportKind classifies one exported symbol.
type exportKind int

const (
	kindProc exportKind = iota
	kindSyntax
	kindVar
)

// classifier fetches and classifies an exported symbol. Two
// implementations exist because the underlying runtime changed how
// syntax keywords answer symbol-value across versions; the right one is
// selected once at startup from the version string.
type classifier func(m *Module, sym *Symbol) exportKind

// classifierVersion is the first version whose symbol-value can see
// macro keywords as first-class objects.
const classifierVersion = "1.30"

func selectClassifier(version string) classifier {
	if VersionAtLeast(version, classifierVersion) {
		return classifyModern
	}
	return classifyLegacy
}

// classifyModern fetches the value with an unbound default and
// recognizes syntax by its implementation class.
func classifyModern(m *Module, sym *Symbol) exportKind {
	v := m.SymbolValueOr(sym, Unbound)
	switch v.(type) {
	case *Macro:
		return kindSyntax
	case unboundType:
		return kindSyntax
	}
	if IsProcedure(v) {
		return kindProc
	}
	return kindVar
}

// classifyLegacy emulates older runtimes, where symbol-value cannot see
// syntax keywords at all and the unbound sentinel marks them.
func classifyLegacy(m *Module, sym *Symbol) exportKind {
	v := m.SymbolValueOr(sym, Unbound)
	if _, isMacro := v.(*Macro); isMacro {
		// symbol-value on these runtimes would have answered the
		// default for a keyword.
		v = Unbound
	}
	if _, unbound := v.(unboundType); unbound {
		return kindSyntax
	}
	if IsProcedure(v) {
		return kindProc
	}
	return kindVar
}

// ModuleExports classifies every exported symbol of the named module
// into exactly one of the procs, syntax, or vars buckets, preserving
// export order. The modules bucket is always empty: cross-module
// aggregation is unsupported. The reply has the shape
//
//	((modules) (procs (car) (cons)) (syntax (when)) (vars (x)))
//
// with each entry a one-element list holding the name.
func (vm *VM) ModuleExports(name string) Value {
	m := vm.FindModule(name)
	var procs, syntax, vars []Value
	for _, sym := range m.Exports() {
		entry := List(sym)
		switch vm.classify(m, sym) {
		case kindProc:
			procs = append(procs, entry)
		case kindSyntax:
			syntax = append(syntax, entry)
		default:
			vars = append(vars, entry)
		}
	}
	return List(
		Cons(symModules, nil),
		Cons(symProcs, List(procs...)),
		Cons(symSyntax, List(syntax...)),
		Cons(symVars, List(vars...)),
	)
}

// A Signature is the reconstructed parameter list of a procedure,
// derived from its live formals. Rest reports a variadic tail.
type Signature struct {
	Name     string
	Required []string
	Rest     bool
	Module   string
}

// ProcedureSignature reconstructs the signature of the named procedure
// in the named module. The second result is false when the name is
// unbound, not a procedure, or a primitive with no parameter metadata;
// callers display the empty-string sentinel in that case.
func (vm *VM) ProcedureSignature(module, name string) (Signature, bool) {
	m := vm.FindModule(module)
	sym := Intern(name)
	v, ok := m.Lookup(sym)
	if !ok {
		return Signature{}, false
	}
	c, ok := v.(*Closure)
	if !ok {
		return Signature{}, false
	}
	required, rest := Properize(c.Formals)
	sig := Signature{Name: name, Rest: rest, Module: homeName(c, m)}
	for _, p := range required {
		sig.Required = append(sig.Required, DisplayString(p))
	}
	return sig, true
}

// sexp renders a signature as the autodoc args form:
//
//	(name ("args" (("required" a b) ("optional" "..."))) ("module" mod))
//
// The optional bucket holds the "..." placeholder exactly when rest
// arguments are accepted.
func (s Signature) sexp() Value {
	required := []Value{"required"}
	for _, p := range s.Required {
		required = append(required, Intern(p))
	}
	optional := []Value{"optional"}
	if s.Rest {
		optional = append(optional, "...")
	}
	return List(
		Intern(s.Name),
		List("args", List(List(required...), List(optional...))),
		List("module", Intern(s.Module)),
	)
}

// SymbolDocumentation synthesizes the documentation reply for a name in
// a module:
//
//	((signature . sig) (docstring . text))
//
// For an unbound name the whole reply is the empty-string sentinel;
// nothing here ever raises.
func (vm *VM) SymbolDocumentation(module, name string) Value {
	m := vm.FindModule(module)
	sym := Intern(name)
	v, ok := m.Lookup(sym)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case *Closure:
		sig, _ := vm.ProcedureSignature(module, name)
		doc := "A procedure in module " + sig.Module + ".\n" + x.Doc
		return List(
			Cons(symSignature, sig.sexp()),
			Cons(symDocstring, doc),
		)
	case *Primitive:
		doc := "A procedure in module " + m.Name + ".\n"
		return List(
			Cons(symSignature, ""),
			Cons(symDocstring, doc),
		)
	default:
		doc := "An object in module " + m.Name + ".\n\nValue:\n" + WriteString(v)
		return List(
			Cons(symSignature, List(Intern(name))),
			Cons(symDocstring, doc),
		)
	}
}

// Autodoc answers a batch signature lookup for the given names in the
// named module. Unbound names are filtered out, not replaced; bound
// procedures contribute signature entries and other bindings contribute
// value entries of the shape
//
//	(name ("value" . printed) ("module" mod))
func (vm *VM) Autodoc(names []string, module string) Value {
	m := vm.FindModule(module)
	var entries []Value
	for _, name := range names {
		sym := Intern(name)
		v, ok := m.Lookup(sym)
		if !ok {
			continue
		}
		switch v.(type) {
		case *Closure:
			sig, ok := vm.ProcedureSignature(module, name)
			if !ok {
				continue
			}
			entries = append(entries, sig.sexp())
		case *Primitive:
			// No parameter metadata; report an empty args form so the
			// echo area still names the procedure.
			sig := Signature{Name: name, Module: m.Name}
			entries = append(entries, sig.sexp())
		default:
			entries = append(entries, List(
				sym,
				Cons("value", WriteString(v)),
				List("module", Intern(m.Name)),
			))
		}
	}
	return List(entries...)
}

func homeName(c *Closure, fallback *Module) string {
	if c.Home != nil {
		return c.Home.Name
	}
	return fallback.Name
}
