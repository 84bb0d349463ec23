package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	console core.Console
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithConsole sets the console of the core.
func (b DriverBuilder) WithConsole(console core.Console) DriverBuilder {
	b.console = console
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}

	c := core.NewBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq).
		WithConsole(b.console).
		Build(name + ".Core")

	return &driverImpl{
		engine: b.engine,
		core:   c,
	}
}
