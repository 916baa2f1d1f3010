// Package compiler implements the assembler: it lowers a checker.TProgram
// into a single linear array of Opcode values, resolving every call and
// jump to an absolute address via a label table exactly as
// original_source/assembler.rs's Assembler/OpLoc design does (label id ->
// (owning function, offset), patched only after every function body's base
// address is known).
//
// Opcode is a flat Go struct with a fixed-width int64/float64 payload
// rather than a packed byte-plus-varint stream: this toolchain's bytecode
// is never persisted, only run immediately after assembly, so there is no
// wire format to economize on, and a fixed-width payload sidesteps the
// need to pad jump targets so they can be patched in place.
package compiler

// Op is the opcode of one instruction.
type Op uint8

const (
	OpMakeInt Op = iota
	OpMakeFloat
	OpMakeBool
	OpAddInt
	OpAddFloat
	OpSubInt
	OpSubFloat
	OpPop
	OpPushNone
	OpGetLocal
	OpSetLocal
	OpJump
	OpJumpIf
	OpJumpNotIf
	OpCall
	OpReturn
	OpECall
)

var opNames = [...]string{
	OpMakeInt:   "MakeInt",
	OpMakeFloat: "MakeFloat",
	OpMakeBool:  "MakeBool",
	OpAddInt:    "AddInt",
	OpAddFloat:  "AddFloat",
	OpSubInt:    "SubInt",
	OpSubFloat:  "SubFloat",
	OpPop:       "Pop",
	OpPushNone:  "PushNone",
	OpGetLocal:  "GetLocal",
	OpSetLocal:  "SetLocal",
	OpJump:      "Jump",
	OpJumpIf:    "JumpIf",
	OpJumpNotIf: "JumpNotIf",
	OpCall:      "Call",
	OpReturn:    "Return",
	OpECall:     "ECall",
}

func (op Op) String() string {
	if int(op) >= len(opNames) || opNames[op] == "" {
		return "invalid opcode"
	}
	return opNames[op]
}

// Opcode is one bytecode instruction. At most one of Int/Float/Bool is
// meaningful, depending on Op:
//   - MakeInt: Int is the literal value (reinterpreted as int64 bits).
//   - MakeFloat: Float is the literal value.
//   - MakeBool: Bool is the literal value.
//   - GetLocal/SetLocal: Int is the signed frame-relative stack offset.
//   - Jump/JumpIf/JumpNotIf/Call: Int is the absolute target address,
//     resolved from a label or callee UID by the final patch pass.
//   - ECall: no payload; the selector (see PrintPrimitive, FloatCast, ...)
//     is popped from the stack, where a preceding MakeInt pushed it.
type Opcode struct {
	Op    Op
	Int   int64
	Float float64
	Bool  bool
}

// ECall selectors. IntCast and BoolCast restore the `int`/`bool` builtins
// by direct analogy with FloatCast and original_source/builtins.rs's
// reserved name list (`ecall`, `float`, `int` all present there).
const (
	PrintPrimitive int64 = iota
	FloatCast
	IntCast
	BoolCast
)
