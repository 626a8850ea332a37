/*
Package stklos implements the runtime half of a Geiser connection to the
STklos Scheme system, together with the compact STklos-flavored object
model the introspection layer operates on.

Geiser is an Emacs environment for interactive Scheme development. It
drives a running Scheme process over a line-oriented textual protocol:
the editor sends one printed S-expression per request, and the runtime
answers with exactly one printed S-expression followed by a blank line.
This package provides the runtime-side responder for that protocol: an
evaluation wrapper that captures output and normalizes results into the
reply envelope, load-path management, module and symbol completion,
export classification, procedure signature reconstruction, and
documentation synthesis.

To start, use NewVM to create and initialize a runtime. The VM carries
the module registry, the load path, and the optional protocol log sink;
there is no ambient global state. Use DoString to run Scheme code, and
the geiser: procedures (bound in the STklos module) to answer editor
requests:

	vm := stklos.NewVM()
	reply := vm.EvalIn("", "(+ 1 2)")
	stklos.WriteReply(os.Stdout, vm, reply)

The reply envelope has the shape

	((result "3") (output . ""))

on success, or

	((error (key . "message")))

when evaluation raised. Multiple values yield multiple result strings.
If the evaluated expression produced no value at all, the result falls
back to the captured output string; this mirrors the behavior of the
original protocol and is preserved for compatibility.

The editor side of the protocol (command translation, lexical module
resolution over buffer text, reply parsing, the synchronous client)
lives in the geiser subpackage. The stklos-geiser command serves the
responder over stdin and stdout.

The object model is deliberately small: interned symbols, mutable
pairs, strings, numbers, booleans, closures that retain their live
formal parameter lists, primitives, and macro keywords. It exists so
the responder has real bindings to introspect; it is not a complete
Scheme. Every introspection query degrades to an empty or sentinel
answer rather than raising, so the editor UI stays responsive no matter
what it asks about.
*/
package stklos
