package compiler

import "toyc/lang/checker"

// emitUnaryBuiltin synthesizes the one-argument ECall-wrapping function
// body shared by print/float/int/bool: push the argument, push the
// selector, ECall, write the result into the return slot. This keeps the
// VM's user-call path uniform — a builtin is a regular function, not a
// special VM-level case at the Call site — for print, and generalizes to
// float/int/bool by direct analogy.
func emitUnaryBuiltin(a *assembler, uid checker.UID, selector int64) {
	a.beginFunction(uid)
	const argc = 1
	const argOffset = int64(-1)
	const retSlot = int64(-(argc) - 1)

	a.emit(uid, Opcode{Op: OpGetLocal, Int: argOffset})
	a.emit(uid, Opcode{Op: OpMakeInt, Int: selector})
	a.emit(uid, Opcode{Op: OpECall})
	a.emit(uid, Opcode{Op: OpSetLocal, Int: retSlot})
	a.emit(uid, Opcode{Op: OpReturn})
}

func emitBuiltins(a *assembler) {
	emitUnaryBuiltin(a, checker.BuiltinPrintUID, PrintPrimitive)
	emitUnaryBuiltin(a, checker.BuiltinFloatUID, FloatCast)
	emitUnaryBuiltin(a, checker.BuiltinIntUID, IntCast)
	emitUnaryBuiltin(a, checker.BuiltinBoolUID, BoolCast)
}
