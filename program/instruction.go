// Package program defines the instruction set, the translator that turns
// source bytes into a Program, and the compiled program image format.
package program

import (
	"fmt"
	"strings"
)

// Opcode identifies one of the eight instructions.
type Opcode uint8

// The instruction set. The zero value is reserved so that an unset slot is
// never mistaken for a real instruction.
const (
	invalidOpcode Opcode = iota
	MoveRight
	MoveLeft
	Increment
	Decrement
	Write
	Read
	OpenLoop
	CloseLoop
)

var opcodeNames = map[Opcode]string{
	MoveRight: "MoveRight",
	MoveLeft:  "MoveLeft",
	Increment: "Increment",
	Decrement: "Decrement",
	Write:     "Write",
	Read:      "Read",
	OpenLoop:  "OpenLoop",
	CloseLoop: "CloseLoop",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}

	return fmt.Sprintf("Opcode(%d)", uint8(op))
}

// IsLoop reports whether the opcode carries a jump target.
func (op Opcode) IsLoop() bool {
	return op == OpenLoop || op == CloseLoop
}

// Instruction is a single decoded instruction. Target is the index of the
// partner instruction for OpenLoop and CloseLoop and zero otherwise.
type Instruction struct {
	Op     Opcode
	Target int
}

func (i Instruction) String() string {
	if i.Op.IsLoop() {
		return fmt.Sprintf("%s{%d}", i.Op, i.Target)
	}

	return i.Op.String()
}

// Program is an ordered, read-only list of instructions.
type Program []Instruction

// String renders the program back to source text.
func (p Program) String() string {
	var sb strings.Builder

	isa := DefaultISA()
	for _, inst := range p {
		if b, ok := isa.Symbol(inst.Op); ok {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('?')
		}
	}

	return sb.String()
}

// Validate checks that every opcode is known and that loop instructions
// form matched, non-overlapping pairs.
func (p Program) Validate() error {
	var open []int

	for pc, inst := range p {
		if _, ok := opcodeNames[inst.Op]; !ok {
			return fmt.Errorf("program: unknown opcode %d at %d", uint8(inst.Op), pc)
		}

		switch inst.Op {
		case OpenLoop:
			if inst.Target <= pc || inst.Target >= len(p) {
				return fmt.Errorf("program: open loop at %d targets %d", pc, inst.Target)
			}
			open = append(open, pc)
		case CloseLoop:
			if len(open) == 0 {
				return fmt.Errorf("program: close loop at %d has no open loop", pc)
			}
			partner := open[len(open)-1]
			open = open[:len(open)-1]
			if inst.Target != partner || p[partner].Target != pc {
				return fmt.Errorf("program: loop pair %d/%d is not matched", partner, pc)
			}
		default:
			if inst.Target != 0 {
				return fmt.Errorf("program: %s at %d carries target %d", inst.Op, pc, inst.Target)
			}
		}
	}

	if len(open) > 0 {
		return fmt.Errorf("program: open loop at %d is never closed", open[0])
	}

	return nil
}
