package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/DavidTxx/solidity/yul"
)

// scenario is one reconciliation case: a source and a target layout written
// in a small slot syntax, bottom slot first.
//
//	JUNK      don't-care position (target only)
//	RET       return label of the enclosing function
//	RET[f]    return label of a call to f
//	TMP[f,1]  temporary 1 of a call to f
//	0x2a, 42  literal
//	a, x1     variable
type scenario struct {
	Name   string   `yaml:"name"`
	Source []string `yaml:"source"`
	Target []string `yaml:"target"`
}

// loadScenarios reads a YAML list of scenarios.
func loadScenarios(path string) ([]scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var scenarios []scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return scenarios, nil
}

// slotParser interns call sites and variable declarations by name, so that
// the same token denotes the same identity within one scenario.
type slotParser struct {
	calls map[string]*yul.FunctionCall
	vars  map[string]*yul.Variable
}

func newSlotParser() *slotParser {
	return &slotParser{
		calls: make(map[string]*yul.FunctionCall),
		vars:  make(map[string]*yul.Variable),
	}
}

func (p *slotParser) call(name string) *yul.FunctionCall {
	if c, ok := p.calls[name]; ok {
		return c
	}
	c := &yul.FunctionCall{FunctionName: name}
	p.calls[name] = c
	return c
}

func (p *slotParser) variable(name string) *yul.Variable {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := &yul.Variable{Name: name}
	p.vars[name] = v
	return v
}

// parseSlot parses one slot token. Junk is only accepted in targets.
func (p *slotParser) parseSlot(token string, inTarget bool) (yul.StackSlot, error) {
	token = strings.TrimSpace(token)
	switch {
	case token == "":
		return nil, fmt.Errorf("empty slot token")

	case token == "JUNK":
		if !inTarget {
			return nil, fmt.Errorf("JUNK is only valid in a target layout")
		}
		return yul.JunkSlot{}, nil

	case token == "RET":
		return yul.FunctionReturnLabelSlot{}, nil

	case strings.HasPrefix(token, "RET[") && strings.HasSuffix(token, "]"):
		name := token[len("RET[") : len(token)-1]
		if name == "" {
			return nil, fmt.Errorf("missing function name in %q", token)
		}
		return yul.FunctionCallReturnLabelSlot{Call: p.call(name)}, nil

	case strings.HasPrefix(token, "TMP[") && strings.HasSuffix(token, "]"):
		name, indexText, ok := strings.Cut(token[len("TMP["):len(token)-1], ",")
		if !ok {
			return nil, fmt.Errorf("want TMP[function, index], got %q", token)
		}
		index, err := strconv.Atoi(strings.TrimSpace(indexText))
		if err != nil {
			return nil, fmt.Errorf("bad temporary index in %q: %w", token, err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("missing function name in %q", token)
		}
		return yul.TemporarySlot{Call: p.call(name), Index: index}, nil

	case strings.HasPrefix(token, "0x"):
		value, err := uint256.FromHex(token)
		if err != nil {
			return nil, fmt.Errorf("bad literal %q: %w", token, err)
		}
		return yul.LiteralSlot{Value: *value}, nil

	case token[0] >= '0' && token[0] <= '9':
		var value uint256.Int
		if err := value.SetFromDecimal(token); err != nil {
			return nil, fmt.Errorf("bad literal %q: %w", token, err)
		}
		return yul.LiteralSlot{Value: value}, nil

	default:
		return yul.VariableSlot{Variable: p.variable(token)}, nil
	}
}

// parseStack parses a whole layout, bottom slot first.
func (p *slotParser) parseStack(tokens []string, inTarget bool) (yul.Stack, error) {
	stack := make(yul.Stack, 0, len(tokens))
	for _, token := range tokens {
		slot, err := p.parseSlot(token, inTarget)
		if err != nil {
			return nil, err
		}
		stack.Push(slot)
	}
	return stack, nil
}
