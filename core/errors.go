package core

import (
	"errors"
	"fmt"
)

// Sentinels matched by RunError through errors.Is.
var (
	ErrPointerOverflow  = errors.New("pointer overflow")
	ErrPointerUnderflow = errors.New("pointer underflow")
	ErrIO               = errors.New("console i/o failed")
)

// RunErrorKind classifies runtime failures.
type RunErrorKind int

const (
	PointerOverflow RunErrorKind = iota
	PointerUnderflow
	IO
)

// RunError halts a Machine. Position is the program counter of the failing
// instruction. Err holds the underlying cause of an IO error.
type RunError struct {
	Kind     RunErrorKind
	Position int
	Err      error
}

func (e *RunError) Error() string {
	switch e.Kind {
	case PointerOverflow:
		return fmt.Sprintf("%s at %d", ErrPointerOverflow, e.Position)
	case PointerUnderflow:
		return fmt.Sprintf("%s at %d", ErrPointerUnderflow, e.Position)
	default:
		return fmt.Sprintf("%s at %d: %v", ErrIO, e.Position, e.Err)
	}
}

// Is matches the sentinel of the error kind.
func (e *RunError) Is(target error) bool {
	switch e.Kind {
	case PointerOverflow:
		return target == ErrPointerOverflow
	case PointerUnderflow:
		return target == ErrPointerUnderflow
	default:
		return target == ErrIO
	}
}

// Unwrap returns the underlying I/O cause, if any.
func (e *RunError) Unwrap() error {
	return e.Err
}
