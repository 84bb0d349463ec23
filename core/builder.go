package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	console Console
}

// NewBuilder returns a Builder with a 1 GHz clock and the process console.
func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConsole sets the console the core reads from and writes to.
func (b Builder) WithConsole(console Console) Builder {
	b.console = console
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}

	c := &Core{
		console: b.console,
	}

	if c.console == nil {
		c.console = StdConsole()
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
