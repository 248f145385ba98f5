package yul

import "github.com/holiman/uint256"

// FunctionCall identifies one call site. Slots referring to a call compare by
// the identity of the FunctionCall, not by name: two calls to the same
// function are distinct call sites.
type FunctionCall struct {
	FunctionName string
}

// Variable identifies one declared local binding, again by identity.
type Variable struct {
	Name string
}

// StackSlot is one logical value occupying one position in a stack layout.
// The variants below form a closed set. Every variant is a comparable value
// struct, so two StackSlots are == iff they have the same variant and the
// same payload, with pointer identity for call-site and declaration
// references. That makes StackSlot directly usable as a map key with the
// equality the shuffling algorithm requires.
type StackSlot interface {
	isStackSlot()
}

// FunctionCallReturnLabelSlot is the return label of a specific call site.
type FunctionCallReturnLabelSlot struct {
	Call *FunctionCall
}

// FunctionReturnLabelSlot is the return label of the enclosing function.
type FunctionReturnLabelSlot struct{}

// VariableSlot is the current value of a named local binding.
type VariableSlot struct {
	Variable *Variable
}

// LiteralSlot is an immediate 256-bit constant.
type LiteralSlot struct {
	Value uint256.Int
}

// TemporarySlot is the Index-th sub-result of a specific call site.
type TemporarySlot struct {
	Call  *FunctionCall
	Index int
}

// JunkSlot marks a position whose content does not matter. It is only valid
// in target layouts; a source layout describes a real stack and never
// contains one.
type JunkSlot struct{}

func (FunctionCallReturnLabelSlot) isStackSlot() {}
func (FunctionReturnLabelSlot) isStackSlot()     {}
func (VariableSlot) isStackSlot()                {}
func (LiteralSlot) isStackSlot()                 {}
func (TemporarySlot) isStackSlot()               {}
func (JunkSlot) isStackSlot()                    {}

// isJunk reports whether slot is a don't-care marker.
func isJunk(slot StackSlot) bool {
	_, ok := slot.(JunkSlot)
	return ok
}
