package core

import (
	"github.com/sarchlab/bfsim/program"
)

// Machine executes a Program against a byte tape.
type Machine struct {
	state machineState
	emu   instEmulator
}

// NewMachine creates a Machine with an empty tape and the cursor and program
// counter at zero. A nil console uses the process's stdin and stdout.
func NewMachine(code program.Program, console Console) *Machine {
	if console == nil {
		console = StdConsole()
	}

	return &Machine{
		state: machineState{Code: code},
		emu:   instEmulator{console: console},
	}
}

// Step executes one instruction. It returns false once the program counter
// has run past the last instruction.
func (m *Machine) Step() (bool, error) {
	if m.Done() {
		return false, nil
	}

	m.state.Steps++
	inst := m.state.Code[m.state.PC]

	if err := m.emu.RunInst(inst, &m.state); err != nil {
		return false, err
	}

	return true, nil
}

// Run steps until the program ends or fails, then flushes console output.
// Output produced before a failure is flushed as well.
func (m *Machine) Run() error {
	for {
		running, err := m.Step()
		if err != nil {
			_ = m.Flush()
			return err
		}

		if !running {
			break
		}
	}

	return m.Flush()
}

// Flush writes buffered console output.
func (m *Machine) Flush() error {
	if err := m.emu.console.Flush(); err != nil {
		return &RunError{Kind: IO, Position: m.state.PC, Err: err}
	}

	return nil
}

// Done reports whether the program counter is past the end of the program.
func (m *Machine) Done() bool {
	return m.state.PC >= len(m.state.Code)
}

// PC returns the index of the instruction about to execute.
func (m *Machine) PC() int {
	return m.state.PC
}

// Cursor returns the current tape index.
func (m *Machine) Cursor() int {
	return m.state.Cursor
}

// Steps returns how many instructions have been dispatched, including one
// that failed.
func (m *Machine) Steps() uint64 {
	return m.state.Steps
}

// Tape returns a copy of the allocated tape.
func (m *Machine) Tape() []byte {
	tape := make([]byte, len(m.state.Tape))
	copy(tape, m.state.Tape)

	return tape
}

// Program returns the program being executed.
func (m *Machine) Program() program.Program {
	return m.state.Code
}
