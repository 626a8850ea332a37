package stklos

// testVM is shared by tests that do not mutate runtime state. Tests
// that add modules, bindings, or load-path entries make their own VM.
var testVM = NewVM()
