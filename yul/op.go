package yul

import "fmt"

// StackOp identifies one emitted stack-machine operation.
type StackOp int

const (
	OpSwap StackOp = iota
	OpPush
	OpDup
	OpPop
)

func (op StackOp) String() string {
	switch op {
	case OpSwap:
		return "swap"
	case OpPush:
		return "push"
	case OpDup:
		return "dup"
	case OpPop:
		return "pop"
	default:
		panic(op)
	}
}

// OpEvent is one recorded stack-machine operation.
type OpEvent struct {
	Op    StackOp
	Depth int       // swap depth, 1-indexed from the top; zero otherwise
	Slot  StackSlot // pushed or dupped slot; nil otherwise
}

func (e OpEvent) String() string {
	switch e.Op {
	case OpSwap:
		return fmt.Sprintf("swap%d", e.Depth)
	case OpPush, OpDup:
		return fmt.Sprintf("%s %s", e.Op, SlotString(e.Slot))
	case OpPop:
		return "pop"
	default:
		panic(e.Op)
	}
}

// Recorder implements the three emission callbacks of CreateStackLayout and
// keeps the sequence of operations it was asked to emit. It mirrors the
// machine stack the operations would produce, which lets it decide between
// dup and a fresh push the way a real instruction emitter would: a slot
// whose value is already on the stack is dupped, anything else is
// materialized fresh.
type Recorder struct {
	stack  Stack
	Events []OpEvent
}

// NewRecorder returns a Recorder primed with the initial machine stack.
func NewRecorder(initial Stack) *Recorder {
	return &Recorder{stack: initial.Clone()}
}

// Swap records a swap at the given depth.
func (r *Recorder) Swap(depth int) {
	r.Events = append(r.Events, OpEvent{Op: OpSwap, Depth: depth})
	r.stack.Swap(depth)
}

// PushOrDup records a dup if slot already occurs on the mirrored stack and a
// fresh push otherwise.
func (r *Recorder) PushOrDup(slot StackSlot) {
	op := OpPush
	for _, s := range r.stack {
		if s == slot {
			op = OpDup
			break
		}
	}
	r.Events = append(r.Events, OpEvent{Op: op, Slot: slot})
	r.stack.Push(slot)
}

// Pop records a pop.
func (r *Recorder) Pop() {
	r.Events = append(r.Events, OpEvent{Op: OpPop})
	r.stack.Pop()
}

// Stack returns a copy of the mirrored machine stack.
func (r *Recorder) Stack() Stack {
	return r.stack.Clone()
}

// Count returns the number of recorded operations of the given kind.
func (r *Recorder) Count(op StackOp) int {
	n := 0
	for _, e := range r.Events {
		if e.Op == op {
			n++
		}
	}
	return n
}
