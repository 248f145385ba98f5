package yul

import (
	"fmt"
	"strings"
)

// SlotString returns the debug label of a slot.
func SlotString(slot StackSlot) string {
	switch s := slot.(type) {
	case FunctionCallReturnLabelSlot:
		return "RET[" + s.Call.FunctionName + "]"
	case FunctionReturnLabelSlot:
		return "RET"
	case VariableSlot:
		return s.Variable.Name
	case LiteralSlot:
		return s.Value.Hex()
	case TemporarySlot:
		return fmt.Sprintf("TMP[%s, %d]", s.Call.FunctionName, s.Index)
	case JunkSlot:
		return "JUNK"
	default:
		panic(fmt.Sprintf("unknown stack slot %T", slot))
	}
}

// StackString renders a whole layout, bottom first.
func StackString(stack Stack) string {
	var b strings.Builder
	b.WriteString("[ ")
	for _, slot := range stack {
		b.WriteString(SlotString(slot))
		b.WriteByte(' ')
	}
	b.WriteByte(']')
	return b.String()
}
