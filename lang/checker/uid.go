package checker

// UID identifies one declaration (variable or function) for the lifetime of
// a compilation. It is a different namespace from token.NameID: the same
// spelling can produce many UIDs (a parameter `x` in one function and a
// local `x` in another each get their own), and every later stage addresses
// declarations by UID, never by name.
type UID uint32

// Built-in functions are pre-registered in the root scope with fixed UIDs,
// in the same order the scanner reserves their NameIDs, so the compiler can
// special-case them by UID when synthesizing their bodies.
const (
	BuiltinPrintUID UID = iota
	BuiltinFloatUID
	BuiltinIntUID
	BuiltinBoolUID
	firstUserUID
)
