package yul

import "fmt"

// LayoutOptions configures one reconciliation run.
type LayoutOptions struct {
	// Logger receives a debug line for every emitted operation. Defaults to
	// a logger that discards everything.
	Logger Logger

	// MaxShuffleIterations bounds the shuffling loop. The algorithm
	// terminates in polynomial time for well-formed inputs, so the default
	// of 1000 is never reached in practice; the bound only turns a latent
	// bug into a diagnosable fault instead of a hang.
	MaxShuffleIterations int
}

// DefaultLayoutOptions returns the default reconciliation configuration.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Logger:               newNoopLogger(),
		MaxShuffleIterations: 1000,
	}
}

// shuffleOps implements ShuffleOps for one concrete layout pair. A fresh
// instance is built at the start of every shuffling step, so the
// multiplicity map reflects the intermediate stack at the moment each
// decision is made. Every mutation updates the tracked source layout and
// invokes exactly one emission callback, in that order.
type shuffleOps struct {
	currentStack      *Stack
	targetStack       Stack
	swapCallback      func(depth int)
	pushOrDupCallback func(slot StackSlot)
	popCallback       func()
	multiplicity      map[StackSlot]int
	log               Logger
}

func newShuffleOps(
	current *Stack,
	target Stack,
	swap func(depth int),
	pushOrDup func(slot StackSlot),
	pop func(),
	log Logger,
) *shuffleOps {
	multiplicity := make(map[StackSlot]int, len(*current)+len(target))
	for _, slot := range *current {
		multiplicity[slot]--
	}
	for offset, slot := range target {
		if isJunk(slot) && offset < len(*current) {
			// A junk target above an existing slot keeps whatever is there,
			// so demand is registered for the current occupant rather than
			// for a junk value.
			multiplicity[(*current)[offset]]++
		} else {
			multiplicity[slot]++
		}
	}
	return &shuffleOps{
		currentStack:      current,
		targetStack:       target,
		swapCallback:      swap,
		pushOrDupCallback: pushOrDup,
		popCallback:       pop,
		multiplicity:      multiplicity,
		log:               log,
	}
}

func (ops *shuffleOps) IsCompatible(source, target int) bool {
	return source < len(*ops.currentStack) &&
		target < len(ops.targetStack) &&
		(isJunk(ops.targetStack[target]) || (*ops.currentStack)[source] == ops.targetStack[target])
}

func (ops *shuffleOps) SourceIsSame(lhs, rhs int) bool {
	return (*ops.currentStack)[lhs] == (*ops.currentStack)[rhs]
}

func (ops *shuffleOps) SourceMultiplicity(offset int) int {
	return ops.multiplicity[(*ops.currentStack)[offset]]
}

func (ops *shuffleOps) TargetMultiplicity(offset int) int {
	return ops.multiplicity[ops.targetStack[offset]]
}

func (ops *shuffleOps) TargetIsArbitrary(offset int) bool {
	return offset < len(ops.targetStack) && isJunk(ops.targetStack[offset])
}

func (ops *shuffleOps) SourceSize() int { return len(*ops.currentStack) }
func (ops *shuffleOps) TargetSize() int { return len(ops.targetStack) }

func (ops *shuffleOps) Swap(depth int) {
	ops.log.Debugf("swap %d on %s", depth, StackString(*ops.currentStack))
	ops.swapCallback(depth)
	ops.currentStack.Swap(depth)
}

func (ops *shuffleOps) Pop() {
	ops.log.Debugf("pop %s from %s", SlotString(ops.currentStack.Top()), StackString(*ops.currentStack))
	ops.popCallback()
	ops.currentStack.Pop()
}

func (ops *shuffleOps) PushOrDupTarget(offset int) {
	slot := ops.targetStack[offset]
	ops.log.Debugf("push or dup %s onto %s", SlotString(slot), StackString(*ops.currentStack))
	ops.pushOrDupCallback(slot)
	ops.currentStack.Push(slot)
}

// CreateStackLayout transforms current into target, invoking the provided
// callbacks synchronously, in order, exactly once per operation it decides
// on. current is modified in place after each callback; on return it equals
// target, with don't-care positions normalized to JunkSlot so the caller can
// see which positions lost their concrete identity.
//
// The source layout must not contain junk slots. A contradictory layout pair
// and non-termination are design faults of the caller or of the upstream
// analysis and panic; there is no partial result.
func CreateStackLayout(
	current *Stack,
	target Stack,
	swap func(depth int),
	pushOrDup func(slot StackSlot),
	pop func(),
	opts ...LayoutOptions,
) {
	opt := DefaultLayoutOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Logger == nil {
		opt.Logger = newNoopLogger()
	}
	if opt.MaxShuffleIterations <= 0 {
		opt.MaxShuffleIterations = DefaultLayoutOptions().MaxShuffleIterations
	}

	log := opt.Logger.With(map[string]any{"target": StackString(target)})
	log.Debugf("shuffling %s", StackString(*current))

	shuffle(func() ShuffleOps {
		return newShuffleOps(current, target, swap, pushOrDup, pop, log)
	}, opt.MaxShuffleIterations)

	// The shuffled prefix is settled; produce everything still missing
	// above it, in increasing target order.
	for len(*current) < len(target) {
		slot := target[len(*current)]
		log.Debugf("push or dup %s onto %s", SlotString(slot), StackString(*current))
		pushOrDup(slot)
		current.Push(slot)
	}

	assert(len(*current) == len(target), "reconciled stack has the wrong size")
	for i := range *current {
		if isJunk(target[i]) {
			(*current)[i] = JunkSlot{}
		} else {
			assert((*current)[i] == target[i], fmt.Sprintf(
				"reconciled stack differs at offset %d: have %s, want %s",
				i, SlotString((*current)[i]), SlotString(target[i])))
		}
	}
	log.Debugf("shuffled to %s", StackString(*current))
}
