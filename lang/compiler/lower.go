package compiler

import (
	"toyc/lang/checker"
	"toyc/lang/types"
)

// frameCtx carries the stack-offset table and break-target stack for the
// function body currently being lowered.
type frameCtx struct {
	uid         checker.UID
	offsets     map[checker.UID]int64
	argc        int
	breakLabels []int
}

func (c *frameCtx) returnSlot() int64 { return -(int64(c.argc) + 1) }

// buildFrame assigns every argument UID a negative offset (formal 0 at -1,
// matching the reverse-push-order calling convention) and every local
// declaration UID a non-negative offset, in declaration order.
func buildFrame(args, decls []checker.UID) map[checker.UID]int64 {
	m := make(map[checker.UID]int64, len(args)+len(decls))
	for i, uid := range args {
		m[uid] = -(int64(i) + 1)
	}
	for i, uid := range decls {
		m[uid] = int64(i)
	}
	return m
}

// AssembleProgram lowers prog's TIR into one linear Opcode array. The
// top-level chunk is emitted first, at address 0, followed by every
// function body it (transitively) declares; built-ins are always emitted
// so they're callable regardless of whether a given program happens to
// reference all four of them.
func AssembleProgram(prog *checker.TProgram) []Opcode {
	a := newAssembler()
	emitBuiltins(a)

	a.beginFunction(globalUID)
	ctx := &frameCtx{uid: globalUID, offsets: buildFrame(nil, prog.Declarations)}
	for range prog.Declarations {
		a.emit(ctx.uid, Opcode{Op: OpPushNone})
	}
	lowerStmts(a, ctx, prog.Stmts)
	a.emit(ctx.uid, Opcode{Op: OpReturn})

	return a.finish()
}

func lowerFunction(a *assembler, fn checker.TFunction) {
	a.beginFunction(fn.UID)
	ctx := &frameCtx{
		uid:     fn.UID,
		offsets: buildFrame(fn.ArgumentUIDs, fn.Declarations),
		argc:    len(fn.ArgumentUIDs),
	}
	for range fn.Declarations {
		a.emit(ctx.uid, Opcode{Op: OpPushNone})
	}
	lowerStmts(a, ctx, fn.Body)
	a.emit(ctx.uid, Opcode{Op: OpReturn})
}

func lowerStmts(a *assembler, ctx *frameCtx, stmts []checker.TStmt) {
	for _, s := range stmts {
		lowerStmt(a, ctx, s)
	}
}

func lowerStmt(a *assembler, ctx *frameCtx, s checker.TStmt) {
	switch s := s.(type) {
	case checker.TPass:
		// no-op

	case checker.TExprStmt:
		lowerExpr(a, ctx, s.Expr)
		a.emit(ctx.uid, Opcode{Op: OpPop})

	case checker.TDeclare:
		lowerExpr(a, ctx, s.Value)
		a.emit(ctx.uid, Opcode{Op: OpSetLocal, Int: ctx.offsets[s.UID]})

	case checker.TAssign:
		lowerExpr(a, ctx, s.Value)
		a.emit(ctx.uid, Opcode{Op: OpSetLocal, Int: ctx.offsets[s.UID]})

	case checker.TIf:
		lowerIf(a, ctx, s)

	case checker.TWhile:
		lowerWhile(a, ctx, s)

	case checker.TBreak:
		if len(ctx.breakLabels) == 0 {
			panic("break outside of a loop slipped past the checker")
		}
		end := ctx.breakLabels[len(ctx.breakLabels)-1]
		a.emitJump(ctx.uid, OpJump, end)

	case checker.TReturn:
		if s.Value != nil {
			lowerExpr(a, ctx, s.Value)
		} else {
			a.emit(ctx.uid, Opcode{Op: OpPushNone})
		}
		a.emit(ctx.uid, Opcode{Op: OpSetLocal, Int: ctx.returnSlot()})
		a.emit(ctx.uid, Opcode{Op: OpReturn})

	case checker.TFunction:
		lowerFunction(a, s)

	default:
		panic("unsupported TIR statement")
	}
}

func lowerIf(a *assembler, ctx *frameCtx, s checker.TIf) {
	endLabel := a.newLabel(ctx.uid)

	for i, br := range s.Branches {
		lowerExpr(a, ctx, br.Cond)

		isLast := i == len(s.Branches)-1
		nextLabel := endLabel
		if !isLast || s.Else != nil {
			nextLabel = a.newLabel(ctx.uid)
		}

		a.emitJump(ctx.uid, OpJumpNotIf, nextLabel)
		lowerStmts(a, ctx, br.Body)
		a.emitJump(ctx.uid, OpJump, endLabel)

		if nextLabel != endLabel {
			a.attachLabel(ctx.uid, nextLabel)
		}
	}

	if s.Else != nil {
		lowerStmts(a, ctx, s.Else)
	}

	a.attachLabel(ctx.uid, endLabel)
}

func lowerWhile(a *assembler, ctx *frameCtx, s checker.TWhile) {
	beginLabel := a.newLabel(ctx.uid)
	elseLabel := a.newLabel(ctx.uid)
	endLabel := a.newLabel(ctx.uid)

	a.attachLabel(ctx.uid, beginLabel)
	lowerExpr(a, ctx, s.Cond)
	a.emitJump(ctx.uid, OpJumpNotIf, elseLabel)

	ctx.breakLabels = append(ctx.breakLabels, endLabel)
	lowerStmts(a, ctx, s.Body)
	ctx.breakLabels = ctx.breakLabels[:len(ctx.breakLabels)-1]

	a.emitJump(ctx.uid, OpJump, beginLabel)
	a.attachLabel(ctx.uid, elseLabel)
	lowerStmts(a, ctx, s.Else)
	a.attachLabel(ctx.uid, endLabel)
}

func lowerExpr(a *assembler, ctx *frameCtx, e checker.TExpr) {
	switch e := e.(type) {
	case checker.TNone:
		a.emit(ctx.uid, Opcode{Op: OpPushNone})
	case checker.TBool:
		a.emit(ctx.uid, Opcode{Op: OpMakeBool, Bool: e.Value})
	case checker.TInt:
		a.emit(ctx.uid, Opcode{Op: OpMakeInt, Int: int64(e.Value)})
	case checker.TFloat:
		a.emit(ctx.uid, Opcode{Op: OpMakeFloat, Float: e.Value})
	case checker.TIdent:
		a.emit(ctx.uid, Opcode{Op: OpGetLocal, Int: ctx.offsets[e.UID]})
	case checker.TAdd:
		lowerExpr(a, ctx, e.Left)
		lowerExpr(a, ctx, e.Right)
		a.emit(ctx.uid, Opcode{Op: arithOp(e.Type, true)})
	case checker.TMinus:
		lowerExpr(a, ctx, e.Left)
		lowerExpr(a, ctx, e.Right)
		a.emit(ctx.uid, Opcode{Op: arithOp(e.Type, false)})
	case checker.TCall:
		lowerCall(a, ctx, e)
	default:
		panic("unsupported TIR expression")
	}
}

func lowerCall(a *assembler, ctx *frameCtx, e checker.TCall) {
	a.emit(ctx.uid, Opcode{Op: OpPushNone}) // return slot
	for i := len(e.Args) - 1; i >= 0; i-- {
		lowerExpr(a, ctx, e.Args[i])
	}
	a.emitCall(ctx.uid, e.Callee)
	for range e.Args {
		a.emit(ctx.uid, Opcode{Op: OpPop})
	}
}

func arithOp(t types.Type, isAdd bool) Op {
	switch t.(type) {
	case types.Int:
		if isAdd {
			return OpAddInt
		}
		return OpSubInt
	case types.Float:
		if isAdd {
			return OpAddFloat
		}
		return OpSubFloat
	default:
		panic("arithmetic on a non-numeric type slipped past the checker")
	}
}
