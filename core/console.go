package core

import (
	"bufio"
	"io"
	"os"
)

// Console is the byte-level I/O seam of a Machine.
type Console interface {
	Get() (byte, error)
	Put(c byte) error
	Flush() error
}

type bufferedConsole struct {
	in  *bufio.Reader
	out *bufio.Writer
}

// NewConsole creates a buffered Console over a reader and a writer.
func NewConsole(r io.Reader, w io.Writer) Console {
	return &bufferedConsole{
		in:  bufio.NewReader(r),
		out: bufio.NewWriter(w),
	}
}

// StdConsole returns a Console over the process's stdin and stdout.
func StdConsole() Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// Get flushes pending output first so that prompts are visible while
// the read blocks.
func (c *bufferedConsole) Get() (byte, error) {
	if err := c.out.Flush(); err != nil {
		return 0, err
	}

	return c.in.ReadByte()
}

func (c *bufferedConsole) Put(b byte) error {
	return c.out.WriteByte(b)
}

func (c *bufferedConsole) Flush() error {
	return c.out.Flush()
}
