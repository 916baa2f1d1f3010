// Package types defines the toolchain's closed set of static types. Each
// concrete type gets its own small file, one Value implementation apiece —
// here applied to static types rather than runtime values.
package types

// Type is implemented by every member of the closed type set: None, Any,
// Int, Float, Bool, and Function.
type Type interface {
	String() string

	// Equal reports whether two types are structurally identical. It is
	// NOT the assignability check (see checker.isAssignable) — Equal(Any,
	// Int) is false even though Any accepts an Int value.
	Equal(other Type) bool
}
