package types

// Float is the type of float literals and the `float` built-in.
type Float struct{}

func (Float) String() string { return "float" }

func (Float) Equal(other Type) bool {
	_, ok := other.(Float)
	return ok
}
