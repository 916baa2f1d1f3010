package types

// Int is the type of integer literals and the `int` built-in.
type Int struct{}

func (Int) String() string { return "int" }

func (Int) Equal(other Type) bool {
	_, ok := other.(Int)
	return ok
}
