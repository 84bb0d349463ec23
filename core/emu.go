package core

import (
	"fmt"
	"math"

	"github.com/sarchlab/bfsim/program"
)

// maxCursor is the largest cursor a tape slice can be indexed with.
const maxCursor = math.MaxInt

type machineState struct {
	PC     int
	Code   program.Program
	Tape   []byte
	Cursor int
	Steps  uint64
}

type instEmulator struct {
	console Console
}

// RunInst executes one instruction against the state. On error the state is
// left exactly as it was before the instruction.
func (i instEmulator) RunInst(inst program.Instruction, state *machineState) error {
	switch inst.Op {
	case program.MoveRight:
		return i.runMoveRight(state)
	case program.MoveLeft:
		return i.runMoveLeft(state)
	case program.Increment:
		i.runIncrement(state)
	case program.Decrement:
		i.runDecrement(state)
	case program.Write:
		return i.runWrite(state)
	case program.Read:
		return i.runRead(state)
	case program.OpenLoop:
		i.runOpenLoop(inst, state)
	case program.CloseLoop:
		i.runCloseLoop(inst, state)
	default:
		panic(fmt.Sprintf("unknown instruction '%s' at PC %d", inst.Op, state.PC))
	}

	return nil
}

// getOrReserve returns the cell under the cursor, growing the tape with
// zeroed cells up to and including the cursor.
func (i instEmulator) getOrReserve(state *machineState) *byte {
	if state.Cursor >= len(state.Tape) {
		state.Tape = append(state.Tape, make([]byte, state.Cursor+1-len(state.Tape))...)
	}

	return &state.Tape[state.Cursor]
}

func (i instEmulator) runMoveRight(state *machineState) error {
	if state.Cursor == maxCursor {
		return &RunError{Kind: PointerOverflow, Position: state.PC}
	}

	state.Cursor++
	state.PC++

	return nil
}

func (i instEmulator) runMoveLeft(state *machineState) error {
	if state.Cursor == 0 {
		return &RunError{Kind: PointerUnderflow, Position: state.PC}
	}

	state.Cursor--
	state.PC++

	return nil
}

func (i instEmulator) runIncrement(state *machineState) {
	cell := i.getOrReserve(state)
	*cell++
	state.PC++
}

func (i instEmulator) runDecrement(state *machineState) {
	cell := i.getOrReserve(state)
	*cell--
	state.PC++
}

func (i instEmulator) runWrite(state *machineState) error {
	cell := i.getOrReserve(state)

	if err := i.console.Put(*cell); err != nil {
		return &RunError{Kind: IO, Position: state.PC, Err: err}
	}

	state.PC++

	return nil
}

func (i instEmulator) runRead(state *machineState) error {
	b, err := i.console.Get()
	if err != nil {
		return &RunError{Kind: IO, Position: state.PC, Err: err}
	}

	*i.getOrReserve(state) = b
	state.PC++

	return nil
}

// runOpenLoop lands on the matching CloseLoop when the cell is zero; that
// CloseLoop then falls through.
func (i instEmulator) runOpenLoop(inst program.Instruction, state *machineState) {
	if *i.getOrReserve(state) == 0 {
		state.PC = inst.Target
		return
	}

	state.PC++
}

// runCloseLoop lands on the matching OpenLoop, which re-tests the cell.
func (i instEmulator) runCloseLoop(inst program.Instruction, state *machineState) {
	if *i.getOrReserve(state) != 0 {
		state.PC = inst.Target
		return
	}

	state.PC++
}
