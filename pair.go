package stklos

// A Value is any Scheme value: *Symbol, *Pair, string, int64, float64,
// bool, Void, *Closure, *Primitive, *Macro, or the Unbound sentinel.
// Nil represents the empty list.
type Value = interface{}

// A Pair is a mutable cons cell. Lists are chains of pairs ending in
// nil; a chain ending in any other value is an improper list.
type Pair struct {
	Car Value
	Cdr Value
}

// Cons allocates a new pair.
func Cons(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// List builds a proper list of the given values.
func List(items ...Value) Value {
	var head Value
	p := &head
	for _, v := range items {
		cell := &Pair{Car: v}
		*p = cell
		p = &cell.Cdr
	}
	return head
}

// ListToSlice collects the elements of a proper list. The second result
// is false if v is not a proper list.
func ListToSlice(v Value) ([]Value, bool) {
	var items []Value
	for v != nil {
		p, ok := v.(*Pair)
		if !ok {
			return items, false
		}
		items = append(items, p.Car)
		v = p.Cdr
	}
	return items, true
}

// ListLen returns the number of pairs in v, following cdrs until a
// non-pair is reached.
func ListLen(v Value) int {
	n := 0
	for {
		p, ok := v.(*Pair)
		if !ok {
			return n
		}
		n++
		v = p.Cdr
	}
}

// Properize splits a formal parameter list into its required parameters
// and a flag reporting whether a rest parameter is present. A bare
// symbol (lambda args ...) yields no required parameters and a rest
// flag; an improper list (a b . c) yields the required prefix and a
// rest flag. The input is never modified.
func Properize(formals Value) (required []Value, rest bool) {
	for {
		switch f := formals.(type) {
		case nil:
			return required, rest
		case *Pair:
			required = append(required, f.Car)
			formals = f.Cdr
		default:
			return required, true
		}
	}
}
