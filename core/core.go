package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/program"
)

// Core runs a Machine on an akita engine, one instruction per tick.
type Core struct {
	*sim.TickingComponent

	console Console
	machine *Machine
	err     error
}

// MapProgram sets the program that the core needs to run. Any previous
// machine state is discarded.
func (c *Core) MapProgram(code program.Program) {
	c.machine = NewMachine(code, c.console)
	c.err = nil

	Trace("MapProgram",
		"Core", c.Name(),
		"Length", len(code),
	)
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil || c.err != nil {
		return false
	}

	running, err := c.machine.Step()
	if err != nil {
		c.err = err
		Trace("Fault",
			"Core", c.Name(),
			"Time", c.now(),
			"PC", c.machine.PC(),
			"Cursor", c.machine.Cursor(),
			"Steps", c.machine.Steps(),
			"Error", err.Error(),
		)

		return false
	}

	if !running {
		Trace("Halt",
			"Core", c.Name(),
			"Time", c.now(),
			"Steps", c.machine.Steps(),
		)

		return false
	}

	LogState(c.machine)

	return true
}

func (c *Core) now() float64 {
	if c.Engine == nil {
		return 0
	}

	return float64(c.Engine.CurrentTime() * 1e9)
}

// Machine returns the machine mapped by the last MapProgram call.
func (c *Core) Machine() *Machine {
	return c.machine
}

// Err returns the runtime error that stopped the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Flush writes buffered console output.
func (c *Core) Flush() error {
	if c.machine == nil {
		return c.console.Flush()
	}

	return c.machine.Flush()
}
