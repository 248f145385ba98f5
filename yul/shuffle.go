package yul

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// ShuffleOps abstracts the queries and mutations the shuffling algorithm
// performs on one concrete (source, target) layout pair. The three mutating
// operations change the source layout and emit the corresponding
// stack-machine operation in lockstep.
type ShuffleOps interface {
	// IsCompatible reports whether the slot currently at the given source
	// offset is an acceptable occupant of the given target offset. A junk
	// target slot accepts anything.
	IsCompatible(source, target int) bool
	// SourceIsSame reports whether the slots at the two source offsets are
	// identical.
	SourceIsSame(lhs, rhs int) bool
	// SourceMultiplicity returns how many more copies of the slot at the
	// given source offset are still wanted, negative if that many too many
	// copies are present, zero if the count is exact.
	SourceMultiplicity(offset int) int
	// TargetMultiplicity is SourceMultiplicity for the slot wanted at the
	// given target offset.
	TargetMultiplicity(offset int) int
	// TargetIsArbitrary reports whether any slot satisfies the given target
	// offset.
	TargetIsArbitrary(offset int) bool
	// SourceSize returns the number of slots in the source layout.
	SourceSize() int
	// TargetSize returns the number of slots in the target layout.
	TargetSize() int
	// Swap exchanges the source top with the slot depth positions below it.
	Swap(depth int)
	// Pop removes the source top.
	Pop()
	// PushOrDupTarget puts the slot wanted at the given target offset on top
	// of the source, either by duplicating an existing occurrence or by
	// materializing it fresh.
	PushOrDupTarget(offset int)
}

// assert panics if the condition does not hold. The shuffling invariants are
// design guarantees: a violation means the layout pair or the ShuffleOps
// implementation is malformed, and there is nothing a caller could recover.
func assert(cond bool, msg string) {
	if !cond {
		panic("stack shuffling invariant violated: " + msg)
	}
}

// shuffle runs shuffling steps until the source layout is compatible with
// the target. A fresh ShuffleOps is obtained from newOps for every step, so
// the multiplicity accounting always reflects the current intermediate
// stack; each step performs exactly one operation that modifies it. On
// return every slot in the source is compatible with the slot at the same
// target offset, but the target may still contain further slots that have
// not been pushed yet.
//
// The algorithm terminates in polynomial time for well-formed inputs;
// maxIterations only guards against latent bugs.
func shuffle(newOps func() ShuffleOps, maxIterations int) {
	for i := 0; i < maxIterations; i++ {
		if !shuffleStep(newOps()) {
			return
		}
	}
	panic(fmt.Sprintf("could not create stack layout after %d iterations", maxIterations))
}

// shuffleStep performs a single operation transforming the source layout
// closer to the target layout. Returns false once no further shuffling is
// needed.
func shuffleStep(ops ShuffleOps) bool {
	// Done once every source slot is compatible with its own target offset.
	// Note that the target may still be longer than the source.
	done := true
	for i := 0; i < ops.SourceSize(); i++ {
		if !ops.IsCompatible(i, i) {
			done = false
			break
		}
	}
	if done {
		return false
	}

	sourceTop := ops.SourceSize() - 1

	// An unwanted extra copy on top is popped, unless the target wants an
	// arbitrary slot at exactly that position.
	if ops.SourceMultiplicity(sourceTop) < 0 &&
		!(ops.TargetSize() >= ops.SourceSize() && ops.TargetIsArbitrary(sourceTop)) {
		ops.Pop()
		return true
	}

	assert(ops.TargetSize() > 0, "shuffling towards an empty target")

	// If the top is not meant to stay where it is, try to swap it down to a
	// position that wants it.
	if !ops.IsCompatible(sourceTop, sourceTop) || ops.TargetIsArbitrary(sourceTop) {
		for offset := 0; offset < min(ops.SourceSize(), ops.TargetSize()); offset++ {
			if !ops.IsCompatible(offset, offset) && // that position is not settled yet
				!ops.SourceIsSame(offset, sourceTop) && // swapping would not just exchange identical slots
				ops.IsCompatible(sourceTop, offset) { // and it wants the current top
				ops.Swap(ops.SourceSize() - offset - 1)
				return true
			}
		}
	}

	// If a lower slot holds an excess copy that has to vacate, produce the
	// slot that belongs there instead. After the cases above there is always
	// a target slot to push or dup at this point.
	for offset := 0; offset < ops.SourceSize(); offset++ {
		if !ops.IsCompatible(offset, offset) &&
			ops.SourceMultiplicity(offset) < 0 &&
			offset <= ops.TargetSize() &&
			!ops.TargetIsArbitrary(offset) {
			bringUpTargetSlot(ops, offset)
			return true
		}
	}

	// From here on every slot on the stack is kept.
	for i := 0; i < ops.SourceSize(); i++ {
		assert(ops.SourceMultiplicity(i) >= 0, "excess slot remained on the stack")
	}
	assert(ops.SourceSize() <= ops.TargetSize(), "source stack grew beyond the target")

	// If the top is out of position, swap up a slot that wants to be on top.
	if !ops.IsCompatible(sourceTop, sourceTop) {
		for offset := 0; offset < ops.SourceSize(); offset++ {
			if !ops.IsCompatible(offset, offset) && ops.IsCompatible(offset, sourceTop) {
				ops.Swap(ops.SourceSize() - offset - 1)
				return true
			}
		}
	}

	// Produce missing slots.
	if ops.SourceSize() < ops.TargetSize() {
		bringUpTargetSlot(ops, ops.SourceSize())
		return true
	}

	// The stack has the correct size, every slot the correct number of
	// copies, and the top is in position; only positional mismatches remain.
	assert(ops.SourceSize() == ops.TargetSize(), "source and target size differ")
	size := ops.SourceSize()
	for i := 0; i < size; i++ {
		assert(ops.SourceMultiplicity(i) == 0, "slot with non-zero multiplicity in positional phase")
		assert(ops.TargetIsArbitrary(i) || ops.TargetMultiplicity(i) == 0,
			"target slot with non-zero multiplicity in positional phase")
	}
	assert(ops.IsCompatible(sourceTop, sourceTop), "top left its position in positional phase")

	// Prefer swapping up a lower out-of-position slot whose position wants
	// the current top.
	for offset := 0; offset < size; offset++ {
		if !ops.IsCompatible(offset, offset) && ops.IsCompatible(sourceTop, offset) {
			ops.Swap(size - offset - 1)
			return true
		}
	}
	// Otherwise swap up anything that is still out of position.
	for offset := 0; offset < size; offset++ {
		if !ops.IsCompatible(offset, offset) && !ops.SourceIsSame(offset, sourceTop) {
			ops.Swap(size - offset - 1)
			return true
		}
	}

	panic("stack shuffling reached an unreachable state")
}

// bringUpTargetSlot pushes or dups the slot wanted at the given target
// offset. The offset that actually still demands a copy of that slot may be
// a different one: if the slot wanted here currently sits at another
// out-of-position offset, the demand chain is followed breadth-first over
// target offsets until an offset with unmet demand is found.
func bringUpTargetSlot(ops ShuffleOps, targetOffset int) {
	toVisit := []int{targetOffset}
	visited := mapset.NewThreadUnsafeSet[int]()

	for len(toVisit) > 0 {
		offset := toVisit[0]
		toVisit = toVisit[1:]
		visited.Add(offset)
		if ops.TargetMultiplicity(offset) > 0 {
			ops.PushOrDupTarget(offset)
			return
		}
		// The wanted slot must currently be somewhere else on the stack.
		for next := 0; next < min(ops.SourceSize(), ops.TargetSize()); next++ {
			if !ops.IsCompatible(next, next) &&
				ops.IsCompatible(next, offset) &&
				!visited.Contains(next) {
				toVisit = append(toVisit, next)
			}
		}
	}

	panic("no target slot left to push or dup")
}
