package machine

import (
	"fmt"
	"math"

	"toyc/lang/compiler"
)

// execECall pops a selector (always an Int object, pushed by
// emitUnaryBuiltin alongside the argument) and dispatches on it. Every
// builtin here follows the same shape: pop one argument, compute a
// result, push exactly one value back — matching the frame layout
// lang/compiler/builtins.go sets up for all four.
func (m *Machine) execECall() error {
	selRef := m.pop()
	if selRef == noneValue || m.typeIndexOf(selRef) != TypeInt {
		panic("machine: ECall selector is not an Int (compiler invariant violated)")
	}
	selector := int64(m.heap[selRef])

	switch selector {
	case compiler.PrintPrimitive:
		arg := m.pop()
		if err := m.printValue(arg); err != nil {
			return err
		}
		m.push(noneValue)

	case compiler.FloatCast:
		arg := m.pop()
		m.push(m.allocWord(TypeFloat, floatBits(m.toFloat(arg))))

	case compiler.IntCast:
		arg := m.pop()
		m.push(m.allocWord(TypeInt, uint64(m.toInt(arg))))

	case compiler.BoolCast:
		arg := m.pop()
		m.push(m.allocWord(TypeBool, boolWord(m.toBool(arg))))

	default:
		panic(fmt.Sprintf("machine: unknown ECall selector %d", selector))
	}
	return nil
}

// toFloat widens an Int or Bool argument into a Float, for the float()
// builtin.
func (m *Machine) toFloat(ref uint64) float64 {
	switch m.typeIndexOf(ref) {
	case TypeInt:
		return float64(int64(m.heap[ref]))
	case TypeBool:
		if m.heap[ref] != 0 {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("machine: float() requires an Int or Bool, got type %d", m.typeIndexOf(ref)))
	}
}

// toInt truncates a Float toward zero, widens a Bool, or passes an Int
// through unchanged, for the int() builtin.
func (m *Machine) toInt(ref uint64) int64 {
	switch m.typeIndexOf(ref) {
	case TypeFloat:
		return int64(floatFromBits(m.heap[ref]))
	case TypeBool:
		if m.heap[ref] != 0 {
			return 1
		}
		return 0
	case TypeInt:
		return int64(m.heap[ref])
	default:
		panic(fmt.Sprintf("machine: int() requires an Int, Float or Bool, got type %d", m.typeIndexOf(ref)))
	}
}

// toBool applies the nonzero/non-NaN-zero test to an Int or Float, or
// passes a Bool through, for the bool() builtin.
func (m *Machine) toBool(ref uint64) bool {
	switch m.typeIndexOf(ref) {
	case TypeInt:
		return int64(m.heap[ref]) != 0
	case TypeFloat:
		return floatFromBits(m.heap[ref]) != 0
	case TypeBool:
		return m.heap[ref] != 0
	default:
		panic(fmt.Sprintf("machine: bool() requires an Int, Float or Bool, got type %d", m.typeIndexOf(ref)))
	}
}

// printValue formats ref the way each reserved type requires: Int as a
// bare decimal, Float with a trailing ".0" when it's an integral value (so
// 4.0 doesn't print as plain "4"), Bool as True/False, String as its raw
// bytes. None and TypeStackFrame are not printable and panic if reached.
// The checker does accept print(None), since a None value is assignable
// to print's Any parameter, so that call type-checks and then panics here.
func (m *Machine) printValue(ref uint64) error {
	if ref == noneValue {
		panic("machine: print() cannot format None")
	}
	switch m.typeIndexOf(ref) {
	case TypeInt:
		_, err := fmt.Fprintf(m.Out, "%d\n", int64(m.heap[ref]))
		return err

	case TypeFloat:
		f := floatFromBits(m.heap[ref])
		if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
			_, err := fmt.Fprintf(m.Out, "%.1f\n", f)
			return err
		}
		_, err := fmt.Fprintf(m.Out, "%v\n", f)
		return err

	case TypeBool:
		word := "False"
		if m.heap[ref] != 0 {
			word = "True"
		}
		_, err := fmt.Fprintln(m.Out, word)
		return err

	case TypeString:
		// Strings have no literal syntax in this language yet (TypeString is
		// a reserved type index); this path exists so a future string
		// literal can reuse ECall's print path unchanged. Encoding: one
		// byte per data word, low byte only.
		size := m.objectSize(ref)
		buf := make([]byte, size)
		for i := uint32(0); i < size; i++ {
			buf[i] = byte(m.heap[ref+uint64(i)])
		}
		_, err := fmt.Fprintf(m.Out, "%s\n", buf)
		return err

	default:
		panic(fmt.Sprintf("machine: print() cannot format heap type %d", m.typeIndexOf(ref)))
	}
}
