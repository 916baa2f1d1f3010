package compiler

import "toyc/lang/checker"

// globalUID is a sentinel owning the top-level chunk's own instructions,
// which are emitted exactly like a function body but live at address 0 and
// are never reached via a Call opcode (the VM simply starts executing
// there).
const globalUID checker.UID = ^checker.UID(0)

type label struct {
	funcUID  checker.UID
	attached bool
	offset   int
}

type jumpPatch struct {
	funcUID checker.UID
	index   int
	label   int
}

type callPatch struct {
	funcUID checker.UID
	index   int
	callee  checker.UID
}

// assembler accumulates one function body's worth of instructions at a
// time (including the top-level chunk's own body, under globalUID) and
// resolves every label and call target to an absolute address only once
// every function's base offset in the final concatenated array is known —
// a two-pass scheme, since a forward call or jump can't be resolved until
// its target's base address exists.
type assembler struct {
	funcOrder []checker.UID
	funcBody  map[checker.UID][]Opcode

	labels []label

	jumpPatches []jumpPatch
	callPatches []callPatch
}

func newAssembler() *assembler {
	return &assembler{funcBody: map[checker.UID][]Opcode{}}
}

// beginFunction starts (or resumes) accumulating instructions for uid.
// AssembleProgram begins the global body (uid == globalUID) with it too.
func (a *assembler) beginFunction(uid checker.UID) {
	if _, ok := a.funcBody[uid]; !ok {
		a.funcBody[uid] = nil
		a.funcOrder = append(a.funcOrder, uid)
	}
}

func (a *assembler) emit(uid checker.UID, op Opcode) int {
	idx := len(a.funcBody[uid])
	a.funcBody[uid] = append(a.funcBody[uid], op)
	return idx
}

// newLabel creates an unattached label owned by uid's function.
func (a *assembler) newLabel(uid checker.UID) int {
	id := len(a.labels)
	a.labels = append(a.labels, label{funcUID: uid})
	return id
}

// attachLabel commits id's offset to uid's current emit position.
func (a *assembler) attachLabel(uid checker.UID, id int) {
	a.labels[id].offset = len(a.funcBody[uid])
	a.labels[id].attached = true
}

// emitJump emits op with a placeholder payload and records a patch so its
// Int field becomes the label's absolute address once resolved.
func (a *assembler) emitJump(uid checker.UID, op Op, labelID int) {
	idx := a.emit(uid, Opcode{Op: op})
	a.jumpPatches = append(a.jumpPatches, jumpPatch{funcUID: uid, index: idx, label: labelID})
}

// emitCall emits a Call with a placeholder payload and records a patch so
// its Int field becomes callee's base address once resolved.
func (a *assembler) emitCall(uid checker.UID, callee checker.UID) {
	idx := a.emit(uid, Opcode{Op: OpCall})
	a.callPatches = append(a.callPatches, callPatch{funcUID: uid, index: idx, callee: callee})
}

// finish concatenates every function body (global first) into one linear
// program and patches every jump and call payload to an absolute address.
func (a *assembler) finish() []Opcode {
	base := map[checker.UID]int{}
	var prog []Opcode

	// The global body, if any, always leads.
	if body, ok := a.funcBody[globalUID]; ok {
		base[globalUID] = 0
		prog = append(prog, body...)
	}
	for _, uid := range a.funcOrder {
		if uid == globalUID {
			continue
		}
		base[uid] = len(prog)
		prog = append(prog, a.funcBody[uid]...)
	}

	for _, p := range a.jumpPatches {
		lbl := a.labels[p.label]
		abs := base[lbl.funcUID] + lbl.offset
		prog[base[p.funcUID]+p.index].Int = int64(abs)
	}
	for _, p := range a.callPatches {
		prog[base[p.funcUID]+p.index].Int = int64(base[p.callee])
	}

	return prog
}
