package yul

import "fmt"

// Stack is an ordered sequence of stack slots. Index 0 is the bottom of the
// stack and the last element is the top.
type Stack []StackSlot

// Push appends a slot on top of the stack.
func (s *Stack) Push(slot StackSlot) {
	*s = append(*s, slot)
}

// Pop removes and returns the top slot.
// Panics if the stack is empty.
func (s *Stack) Pop() StackSlot {
	if len(*s) == 0 {
		panic("stack underflow")
	}
	slot := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return slot
}

// Top returns the top slot without removing it.
// Panics if the stack is empty.
func (s Stack) Top() StackSlot {
	if len(s) == 0 {
		panic("stack underflow")
	}
	return s[len(s)-1]
}

// Swap exchanges the top slot with the slot depth positions below it. depth
// is 1-indexed from the top: Swap(1) exchanges the top two slots.
// Panics if depth does not address a slot below the top.
func (s Stack) Swap(depth int) {
	if depth <= 0 || depth >= len(s) {
		panic(fmt.Sprintf("swap depth %d out of range for stack of height %d", depth, len(s)))
	}
	top := len(s) - 1
	s[top-depth], s[top] = s[top], s[top-depth]
}

// Len returns the number of slots on the stack.
func (s Stack) Len() int {
	return len(s)
}

// Clone returns an independent copy of the stack.
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
