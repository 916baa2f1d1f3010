package machine

import "math"

// Every heap object is a header word followed by object_size data words.
// The header packs the type index into the high 32 bits and the object
// size (in words) into the low 32 bits; a value on the stack is either
// NONE_VALUE or a reference pointing at the object's first data word, one
// past its header.

func packHeader(typeIndex uint32, size uint32) uint64 {
	return uint64(typeIndex)<<32 | uint64(size)
}

func (m *Machine) typeIndexOf(ref uint64) uint32 {
	return uint32(m.heap[ref-1] >> 32)
}

func (m *Machine) objectSize(ref uint64) uint32 {
	return uint32(m.heap[ref-1])
}

// allocWord allocates a one-word object of the given type and returns a
// reference to it. Int, Float and Bool are all represented this way: one
// header word plus one data word holding the bit pattern.
func (m *Machine) allocWord(typeIndex uint32, data uint64) uint64 {
	m.heap = append(m.heap, packHeader(typeIndex, 1))
	ref := uint64(len(m.heap))
	m.heap = append(m.heap, data)
	return ref
}

// popTyped pops a reference and asserts it has the expected type,
// returning its single data word. A mismatch is a checker/compiler
// invariant violation: the type checker guarantees operand types for every
// arithmetic opcode, so this can only fire on a bug upstream.
func (m *Machine) popTyped(want uint32) uint64 {
	ref := m.pop()
	if ref == noneValue {
		panic("machine: expected a value, got None")
	}
	if got := m.typeIndexOf(ref); got != want {
		panic("machine: type confusion on heap value (checker invariant violated)")
	}
	return m.heap[ref]
}

func floatBits(f float64) uint64       { return math.Float64bits(f) }
func floatFromBits(bits uint64) float64 { return math.Float64frombits(bits) }

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
