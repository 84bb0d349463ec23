package verify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

// ErrStepLimit reports that a functional run was cut short.
var ErrStepLimit = errors.New("step limit reached")

// FunctionalResult records the outcome of a functional run.
type FunctionalResult struct {
	Output []byte
	Tape   []byte
	Cursor int
	PC     int
	Steps  uint64
	Err    error
}

// RunFunctional executes a program with the given input bytes. A maxSteps of
// zero runs until the program ends.
func RunFunctional(code program.Program, input []byte, maxSteps int) *FunctionalResult {
	var out bytes.Buffer

	m := core.NewMachine(code, core.NewConsole(bytes.NewReader(input), &out))
	res := &FunctionalResult{}

	for {
		if maxSteps > 0 && m.Steps() >= uint64(maxSteps) && !m.Done() {
			res.Err = fmt.Errorf("%w after %d steps at instruction %d",
				ErrStepLimit, m.Steps(), m.PC())
			break
		}

		running, err := m.Step()
		if err != nil {
			res.Err = err
			break
		}

		if !running {
			break
		}
	}

	if err := m.Flush(); err != nil && res.Err == nil {
		res.Err = err
	}

	res.Output = out.Bytes()
	res.Tape = m.Tape()
	res.Cursor = m.Cursor()
	res.PC = m.PC()
	res.Steps = m.Steps()

	return res
}
