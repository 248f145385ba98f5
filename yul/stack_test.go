package yul

import "testing"

func TestStackPushPopTop(t *testing.T) {
	a := VariableSlot{Variable: &Variable{Name: "a"}}
	b := VariableSlot{Variable: &Variable{Name: "b"}}

	var s Stack
	s.Push(a)
	s.Push(b)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Top() != StackSlot(b) {
		t.Errorf("Top() = %s, want %s", SlotString(s.Top()), SlotString(b))
	}
	if got := s.Pop(); got != StackSlot(b) {
		t.Errorf("Pop() = %s, want %s", SlotString(got), SlotString(b))
	}
	if s.Top() != StackSlot(a) {
		t.Errorf("Top() after pop = %s, want %s", SlotString(s.Top()), SlotString(a))
	}
}

func TestStackSwap(t *testing.T) {
	a := VariableSlot{Variable: &Variable{Name: "a"}}
	b := VariableSlot{Variable: &Variable{Name: "b"}}
	c := VariableSlot{Variable: &Variable{Name: "c"}}

	s := Stack{a, b, c}
	s.Swap(1)
	if got := StackString(s); got != "[ a c b ]" {
		t.Errorf("after Swap(1): %s, want [ a c b ]", got)
	}
	s.Swap(2)
	if got := StackString(s); got != "[ b c a ]" {
		t.Errorf("after Swap(2): %s, want [ b c a ]", got)
	}
}

func TestStackClone(t *testing.T) {
	a := VariableSlot{Variable: &Variable{Name: "a"}}
	b := VariableSlot{Variable: &Variable{Name: "b"}}

	s := Stack{a, b}
	clone := s.Clone()
	clone.Swap(1)
	if got := StackString(s); got != "[ a b ]" {
		t.Errorf("original mutated through clone: %s", got)
	}
}

func TestStackPanics(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			fn()
		})
	}

	a := VariableSlot{Variable: &Variable{Name: "a"}}
	expectPanic("pop_empty", func() { (&Stack{}).Pop() })
	expectPanic("top_empty", func() { (Stack{}).Top() })
	expectPanic("swap_zero_depth", func() { (Stack{a, a}).Swap(0) })
	expectPanic("swap_too_deep", func() { (Stack{a, a}).Swap(2) })
}
