package stklos

import "sync"

// A Symbol is an interned Scheme symbol. Two symbols with the same name
// are always the same object, so symbols compare with ==.
type Symbol struct {
	Name string
}

// symbols is the table of interned symbols.
var symbols = make(map[string]*Symbol)

// symLock is the exclusive lock for the table.
var symLock sync.RWMutex

// Intern returns the symbol with the given name, creating it if needed.
func Intern(name string) *Symbol {
	symLock.RLock()
	sym, ok := symbols[name]
	symLock.RUnlock()
	if ok {
		return sym
	}
	symLock.Lock()
	sym, ok = symbols[name]
	if !ok {
		sym = &Symbol{Name: name}
		symbols[name] = sym
	}
	symLock.Unlock()
	return sym
}

// String returns the symbol's name.
func (s *Symbol) String() string {
	return s.Name
}

// Symbols the evaluator and responder treat specially.
var (
	symQuote        = Intern("quote")
	symQuasiquote   = Intern("quasiquote")
	symUnquote      = Intern("unquote")
	symUnquoteSplic = Intern("unquote-splicing")
	symDefine       = Intern("define")
	symLambda       = Intern("lambda")
	symIf           = Intern("if")
	symSet          = Intern("set!")
	symBegin        = Intern("begin")
	symLet          = Intern("let")
	symAnd          = Intern("and")
	symOr           = Intern("or")
	symDefineModule = Intern("define-module")
	symInModule     = Intern("in-module")
	symExport       = Intern("export")
	symResult       = Intern("result")
	symOutput       = Intern("output")
	symError        = Intern("error")
	symKey          = Intern("key")
)
