// Package api defines the driver API for running programs on the simulated
// machine.
package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

// Driver provides the interface to control a simulated machine.
type Driver interface {
	// MapProgram maps the provided program to the core, discarding the
	// state of any previously mapped program.
	MapProgram(code program.Program)

	// Run ticks the core until the program ends or fails. Console output is
	// flushed before Run returns. The returned error is the runtime error
	// that stopped the program, if any.
	Run() error

	// Machine returns the machine of the mapped program.
	Machine() *core.Machine
}

type driverImpl struct {
	engine sim.Engine
	core   *core.Core
}

func (d *driverImpl) MapProgram(code program.Program) {
	d.core.MapProgram(code)
}

func (d *driverImpl) Run() error {
	if d.core.Machine() == nil {
		panic("api: Run called before MapProgram")
	}

	d.core.TickNow()

	if err := d.engine.Run(); err != nil {
		_ = d.core.Flush()
		return err
	}

	if err := d.core.Err(); err != nil {
		_ = d.core.Flush()
		return err
	}

	return d.core.Flush()
}

func (d *driverImpl) Machine() *core.Machine {
	return d.core.Machine()
}
