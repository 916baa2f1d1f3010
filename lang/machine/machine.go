// Package machine implements the stack-based bytecode interpreter: a value
// stack over a tagged heap, executing the Opcode array the compiler
// package produces. The opcode semantics, heap layout, and print-
// formatting rules are ported field-for-field from
// original_source/runtime.rs's Runtime<Out>.run_op, restructured into a
// single long-lived *Machine value created once per run with one Run
// method, rather than a separate Thread/Frame/boxed-Value object model —
// not needed here, since the heap already doubles as the tagged value
// representation.
package machine

import (
	"context"
	"fmt"
	"io"

	"toyc/lang/compiler"
)

// noneValue is the stack sentinel for "no value", matching
// original_source's NONE_VALUE = usize::MAX.
const noneValue = ^uint64(0)

// Reserved heap type indices.
const (
	TypeInt uint32 = iota
	TypeFloat
	TypeBool
	TypeString
	TypeStackFrame
)

// Machine holds everything one program run needs: the value stack, the
// word-addressed heap, the return-address/saved-fp stack, and the output
// sink print writes to. A Machine is meant for exactly one Run call.
type Machine struct {
	stack []uint64
	heap  []uint64

	// retStack holds alternating (return address, saved fp) pairs, pushed by
	// Call and popped by Return two words at a time. It starts as
	// [NONE_VALUE, 0] so the top-level Return halts the machine instead of
	// returning into a caller that doesn't exist.
	retStack []uint64

	fp int
	pc int

	Out io.Writer
}

// New returns a Machine that writes print output to out.
func New(out io.Writer) *Machine {
	return &Machine{Out: out}
}

// Run executes prog from address 0 until the top-level Return halts it, or
// ctx is cancelled, or the program panics on a type-confusion bug (a
// checker/compiler invariant violation, not a user-facing error).
func (m *Machine) Run(ctx context.Context, prog []compiler.Opcode) error {
	m.stack = m.stack[:0]
	m.heap = m.heap[:0]
	m.retStack = append(m.retStack[:0], noneValue, 0)
	m.fp = 0
	m.pc = 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.pc < 0 || m.pc >= len(prog) {
			return fmt.Errorf("machine: program counter %d out of bounds (program has %d instructions)", m.pc, len(prog))
		}

		op := prog[m.pc]
		switch op.Op {
		case compiler.OpMakeInt:
			m.push(m.allocWord(TypeInt, uint64(op.Int)))
			m.pc++

		case compiler.OpMakeFloat:
			m.push(m.allocWord(TypeFloat, floatBits(op.Float)))
			m.pc++

		case compiler.OpMakeBool:
			m.push(m.allocWord(TypeBool, boolWord(op.Bool)))
			m.pc++

		case compiler.OpAddInt, compiler.OpSubInt:
			r := m.popTyped(TypeInt)
			l := m.popTyped(TypeInt)
			var res int64
			if op.Op == compiler.OpAddInt {
				res = int64(l) + int64(r)
			} else {
				res = int64(l) - int64(r)
			}
			m.push(m.allocWord(TypeInt, uint64(res)))
			m.pc++

		case compiler.OpAddFloat, compiler.OpSubFloat:
			r := floatFromBits(m.popTyped(TypeFloat))
			l := floatFromBits(m.popTyped(TypeFloat))
			var res float64
			if op.Op == compiler.OpAddFloat {
				res = l + r
			} else {
				res = l - r
			}
			m.push(m.allocWord(TypeFloat, floatBits(res)))
			m.pc++

		case compiler.OpPop:
			m.pop()
			m.pc++

		case compiler.OpPushNone:
			m.push(noneValue)
			m.pc++

		case compiler.OpGetLocal:
			m.push(m.stack[int64(m.fp)+op.Int])
			m.pc++

		case compiler.OpSetLocal:
			v := m.pop()
			m.stack[int64(m.fp)+op.Int] = v
			m.pc++

		case compiler.OpJump:
			m.pc = int(op.Int)

		case compiler.OpJumpIf:
			v := m.pop()
			if m.truthy(v) {
				m.pc = int(op.Int)
			} else {
				m.pc++
			}

		case compiler.OpJumpNotIf:
			v := m.pop()
			if !m.truthy(v) {
				m.pc = int(op.Int)
			} else {
				m.pc++
			}

		case compiler.OpCall:
			m.retStack = append(m.retStack, uint64(m.pc+1), uint64(m.fp))
			m.fp = len(m.stack)
			m.pc = int(op.Int)

		case compiler.OpReturn:
			m.stack = m.stack[:m.fp]
			n := len(m.retStack)
			savedFP, ra := m.retStack[n-1], m.retStack[n-2]
			m.retStack = m.retStack[:n-2]
			if ra == noneValue {
				return nil
			}
			m.fp = int(savedFP)
			m.pc = int(ra)

		case compiler.OpECall:
			if err := m.execECall(); err != nil {
				return err
			}
			m.pc++

		default:
			return fmt.Errorf("machine: unknown opcode %v at pc %d", op.Op, m.pc)
		}
	}
}

func (m *Machine) push(v uint64) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() uint64 {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

// truthy implements this language's truthiness rules: NONE_VALUE is always
// truthy, Int/Bool are truthy when nonzero, Float is truthy when nonzero
// (which, under IEEE 754, already leaves NaN truthy without a special
// case — NaN != 0.0 holds). Any other heap type is a checker/compiler bug.
func (m *Machine) truthy(ref uint64) bool {
	if ref == noneValue {
		return true
	}
	switch m.typeIndexOf(ref) {
	case TypeInt:
		return int64(m.heap[ref]) != 0
	case TypeBool:
		return m.heap[ref] != 0
	case TypeFloat:
		return floatFromBits(m.heap[ref]) != 0
	default:
		panic(fmt.Sprintf("machine: cannot evaluate truthiness of heap type %d", m.typeIndexOf(ref)))
	}
}
