package geiser

import (
	"fmt"

	"github.com/geisertalk/stklos"
)

// A Retort is one parsed reply envelope, ready for display. Exactly one
// of the two shapes is populated: Err for an error structure, Results
// and Output for a normal envelope.
type Retort struct {
	// Results holds the printed representation of each returned value,
	// in order. Successful envelopes always carry at least one entry;
	// a call that produced no value echoes its captured output here.
	Results []string
	// Output is the interleaved standard and error output captured
	// while the request ran.
	Output string
	// Err is the error message of an error structure, or empty.
	Err string
}

// Failed reports whether the reply was an error structure.
func (r Retort) Failed() bool {
	return r.Err != ""
}

// ParseRetort parses the printed reply expression received from the
// runtime.
func ParseRetort(text string) (Retort, error) {
	exprs, err := stklos.ParseString(text)
	if err != nil {
		return Retort{}, fmt.Errorf("malformed reply: %v", err)
	}
	if len(exprs) != 1 {
		return Retort{}, fmt.Errorf("expected one reply expression, got %d", len(exprs))
	}
	fields, ok := stklos.ListToSlice(exprs[0])
	if !ok {
		return Retort{}, fmt.Errorf("reply is not a list: %s", text)
	}
	ret := Retort{}
	for _, f := range fields {
		p, ok := f.(*stklos.Pair)
		if !ok {
			continue
		}
		tag, ok := p.Car.(*stklos.Symbol)
		if !ok {
			continue
		}
		switch tag.Name {
		case "error":
			ret.Err = errorMessage(p.Cdr)
			if ret.Err == "" {
				ret.Err = "unknown error"
			}
		case "result":
			items, _ := stklos.ListToSlice(p.Cdr)
			for _, v := range items {
				if s, ok := v.(string); ok {
					ret.Results = append(ret.Results, s)
				} else {
					ret.Results = append(ret.Results, stklos.WriteString(v))
				}
			}
		case "output":
			if s, ok := p.Cdr.(string); ok {
				ret.Output = s
			}
		}
	}
	if !ret.Failed() && ret.Results == nil {
		return Retort{}, fmt.Errorf("reply carries neither result nor error: %s", text)
	}
	return ret, nil
}

// errorMessage digs the message out of (error (key . "message")).
func errorMessage(rest stklos.Value) string {
	items, _ := stklos.ListToSlice(rest)
	for _, v := range items {
		p, ok := v.(*stklos.Pair)
		if !ok {
			continue
		}
		if tag, ok := p.Car.(*stklos.Symbol); ok && tag.Name == "key" {
			if s, ok := p.Cdr.(string); ok {
				return s
			}
			return stklos.DisplayString(p.Cdr)
		}
	}
	return ""
}
