package yul

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestSlotEquality(t *testing.T) {
	f := &FunctionCall{FunctionName: "f"}
	g := &FunctionCall{FunctionName: "f"} // same name, different call site
	x := &Variable{Name: "x"}
	y := &Variable{Name: "x"}

	tests := []struct {
		name string
		lhs  StackSlot
		rhs  StackSlot
		want bool
	}{
		{"same_call_return_label", FunctionCallReturnLabelSlot{Call: f}, FunctionCallReturnLabelSlot{Call: f}, true},
		{"different_call_sites_same_name", FunctionCallReturnLabelSlot{Call: f}, FunctionCallReturnLabelSlot{Call: g}, false},
		{"function_return_labels", FunctionReturnLabelSlot{}, FunctionReturnLabelSlot{}, true},
		{"same_variable", VariableSlot{Variable: x}, VariableSlot{Variable: x}, true},
		{"different_declarations_same_name", VariableSlot{Variable: x}, VariableSlot{Variable: y}, false},
		{"equal_literals", LiteralSlot{Value: *uint256.NewInt(42)}, LiteralSlot{Value: *uint256.NewInt(42)}, true},
		{"different_literals", LiteralSlot{Value: *uint256.NewInt(42)}, LiteralSlot{Value: *uint256.NewInt(43)}, false},
		{"same_temporary", TemporarySlot{Call: f, Index: 1}, TemporarySlot{Call: f, Index: 1}, true},
		{"temporaries_of_different_calls", TemporarySlot{Call: f, Index: 1}, TemporarySlot{Call: g, Index: 1}, false},
		{"temporaries_with_different_index", TemporarySlot{Call: f, Index: 0}, TemporarySlot{Call: f, Index: 1}, false},
		{"junk_slots", JunkSlot{}, JunkSlot{}, true},
		{"different_variants", VariableSlot{Variable: x}, JunkSlot{}, false},
		{"literal_vs_temporary", LiteralSlot{Value: *uint256.NewInt(1)}, TemporarySlot{Call: f, Index: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lhs == tt.rhs; got != tt.want {
				t.Errorf("(%s == %s) = %v, want %v", SlotString(tt.lhs), SlotString(tt.rhs), got, tt.want)
			}
		})
	}
}

func TestSlotAsMapKey(t *testing.T) {
	f := &FunctionCall{FunctionName: "f"}
	x := &Variable{Name: "x"}

	counts := map[StackSlot]int{}
	counts[VariableSlot{Variable: x}]++
	counts[VariableSlot{Variable: x}]++
	counts[TemporarySlot{Call: f, Index: 0}]--
	counts[LiteralSlot{Value: *uint256.NewInt(7)}]++
	counts[LiteralSlot{Value: *uint256.NewInt(7)}]--

	if got := counts[VariableSlot{Variable: x}]; got != 2 {
		t.Errorf("variable count = %d, want 2", got)
	}
	if got := counts[TemporarySlot{Call: f, Index: 0}]; got != -1 {
		t.Errorf("temporary count = %d, want -1", got)
	}
	if got := counts[LiteralSlot{Value: *uint256.NewInt(7)}]; got != 0 {
		t.Errorf("literal count = %d, want 0", got)
	}
	// A different declaration with the same name is a different key.
	if got := counts[VariableSlot{Variable: &Variable{Name: "x"}}]; got != 0 {
		t.Errorf("foreign declaration count = %d, want 0", got)
	}
}
