package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
	"github.com/tebeka/atexit"
)

//go:embed add.b
var addSource []byte

// add reads two decimal digits and prints their sum as a single digit.
func add(a, b byte) (string, error) {
	code, err := program.Translate(addSource)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	m := core.NewMachine(code, core.NewConsole(bytes.NewReader([]byte{a, b}), &out))

	if err := m.Run(); err != nil {
		return "", err
	}

	return out.String(), nil
}

func main() {
	for _, pair := range [][2]byte{{'3', '4'}, {'1', '8'}, {'0', '0'}} {
		sum, err := add(pair[0], pair[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(2)
		}

		fmt.Printf("%c + %c = %s\n", pair[0], pair[1], sum)
	}

	atexit.Exit(0)
}
