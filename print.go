package stklos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zephyrtronium/contains"
)

// WriteString returns the read-back-compatible representation of v, as
// the write procedure prints it. Strings are quoted and escaped.
func WriteString(v Value) string {
	b := strings.Builder{}
	set := contains.Set{}
	writeValue(&b, v, true, &set)
	return b.String()
}

// DisplayString returns the human-readable representation of v, as the
// display procedure prints it. Strings appear without quotes.
func DisplayString(v Value) string {
	b := strings.Builder{}
	set := contains.Set{}
	writeValue(&b, v, false, &set)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, write bool, set *contains.Set) {
	switch x := v.(type) {
	case nil:
		b.WriteString("()")
	case *Symbol:
		b.WriteString(x.Name)
	case string:
		if write {
			b.WriteString(escapeString(x))
		} else {
			b.WriteString(x)
		}
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(formatFloat(x))
	case bool:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case voidType:
		b.WriteString("#void")
	case unboundType:
		b.WriteString("#[unbound]")
	case *Closure:
		fmt.Fprintf(b, "#[closure %s]", closureLabel(x))
	case *Primitive:
		fmt.Fprintf(b, "#[subr %s]", x.Name)
	case *Macro:
		fmt.Fprintf(b, "#[syntax %s]", x.Name)
	case *Values:
		for i, v := range x.Vals {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, v, write, set)
		}
	case *Pair:
		writePair(b, x, write, set)
	default:
		fmt.Fprintf(b, "#[unknown %v]", x)
	}
}

// writePair prints a list, guarding against cycles with a set of
// visited pairs in the same way slot-graph traversal does.
func writePair(b *strings.Builder, p *Pair, write bool, set *contains.Set) {
	if !set.Add(p.UniqueID()) {
		b.WriteString("#[circular]")
		return
	}
	b.WriteByte('(')
	for {
		writeValue(b, p.Car, write, set)
		switch cdr := p.Cdr.(type) {
		case nil:
			b.WriteByte(')')
			return
		case *Pair:
			if !set.Add(cdr.UniqueID()) {
				b.WriteString(" #[circular])")
				return
			}
			b.WriteByte(' ')
			p = cdr
		default:
			b.WriteString(" . ")
			writeValue(b, cdr, write, set)
			b.WriteByte(')')
			return
		}
	}
}

func closureLabel(c *Closure) string {
	if c.Name != "" {
		return c.Name
	}
	return "anonymous"
}

func escapeString(s string) string {
	b := strings.Builder{}
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatFloat prints a float the way the runtime does: integral values
// keep a trailing .0 so they read back as inexact.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
