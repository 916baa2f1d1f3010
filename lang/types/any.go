package types

// Any accepts a value of every other type (see checker.isAssignable); a
// value of type Any is assignable only to an Any target. It exists so
// built-ins like print
// can accept a value of whatever type it's handed.
type Any struct{}

func (Any) String() string { return "Any" }

func (Any) Equal(other Type) bool {
	_, ok := other.(Any)
	return ok
}
