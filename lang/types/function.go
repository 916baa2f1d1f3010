package types

import "strings"

// Function is the type of a declared function: its declared return type and
// the types of its formal parameters, in order.
type Function struct {
	Return Type
	Args   []Type
}

func (f Function) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(") -> ")
	b.WriteString(f.Return.String())
	return b.String()
}

func (f Function) Equal(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(f.Args) != len(o.Args) || !f.Return.Equal(o.Return) {
		return false
	}
	for i, a := range f.Args {
		if !a.Equal(o.Args[i]) {
			return false
		}
	}
	return true
}
