package checker

import (
	"toyc/lang/token"
	"toyc/lang/types"
)

// Symbol is an entry in the symbol table: either a variable (Type is its
// declared type) or a function (Type is a types.Function describing its
// signature), distinguished by IsFunc.
type Symbol struct {
	UID    UID
	Range  token.Range
	Type   types.Type
	IsFunc bool
}

type scope map[token.NameID]*Symbol
