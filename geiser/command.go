package geiser

import (
	"fmt"
	"strings"
)

// A Command is one abstract editor operation. It is built once per
// request and never modified: the translator is pure string
// construction with no side effects.
type Command struct {
	// Verb names the operation: eval, compile, load-file, compile-file,
	// autodoc, completions, module-completions, module-exports,
	// symbol-documentation, no-values, or anything else the runtime
	// binds a geiser: procedure for.
	Verb string
	// Module is the optional target module name. Empty means "no
	// module": evaluation falls back to the runtime's top level, and
	// autodoc passes a live (current-module) reference instead of a
	// quoted name.
	Module string
	// Args are the remaining arguments, already serialized: a form for
	// eval, a filename for load-file, symbol names for autodoc,
	// a prefix string for the completion verbs.
	Args []string
}

// Expression renders the single request expression to transmit for the
// command.
func (c Command) Expression() string {
	switch c.Verb {
	case "eval", "compile":
		module := "#f"
		if c.Module != "" {
			module = "'" + c.Module
		}
		return fmt.Sprintf("(geiser:eval %s '%s)", module, strings.Join(c.Args, " "))
	case "load-file", "compile-file":
		// The runtime has no separate compile step; both verbs load.
		return fmt.Sprintf("(geiser:load-file %s)", schemeString(arg0(c.Args)))
	case "autodoc":
		module := "(current-module)"
		if c.Module != "" {
			module = "'" + c.Module
		}
		return fmt.Sprintf("(geiser:autodoc '(%s) %s)", strings.Join(c.Args, " "), module)
	case "no-values", "symbol-location", "completions-for-symbol-location", "callers", "callees":
		// Unsupported lookups always become the fixed no-op.
		return "(geiser:no-values)"
	case "completions", "module-completions":
		return fmt.Sprintf("(geiser:%s %s)", c.Verb, schemeString(arg0(c.Args)))
	default:
		// Any other verb forwards generically to a like-named
		// responder procedure.
		if len(c.Args) == 0 {
			return fmt.Sprintf("(geiser:%s)", c.Verb)
		}
		return fmt.Sprintf("(geiser:%s %s)", c.Verb, strings.Join(c.Args, " "))
	}
}

// schemeString renders s as a Scheme string literal.
func schemeString(s string) string {
	b := strings.Builder{}
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func arg0(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
