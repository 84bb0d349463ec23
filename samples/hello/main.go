package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/api"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
	"github.com/tebeka/atexit"
)

//go:embed hello.b
var helloSource []byte

func main() {
	code, err := program.Translate(helloSource)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithConsole(core.StdConsole()).
		Build("Driver")

	driver.MapProgram(code)

	if err := driver.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(2)
	}

	fmt.Printf("Finished in %d cycles\n", driver.Machine().Steps())

	atexit.Exit(0)
}
