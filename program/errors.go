package program

import (
	"errors"
	"fmt"
)

// Sentinels matched by LexError through errors.Is.
var (
	ErrInvalidInstruction = errors.New("invalid instruction")
	ErrUnmatchedOpenLoop  = errors.New("unmatched open loop")
	ErrUnmatchedCloseLoop = errors.New("unmatched close loop")
)

// LexErrorKind classifies translation failures.
type LexErrorKind int

const (
	InvalidInstruction LexErrorKind = iota
	UnmatchedOpenLoop
	UnmatchedCloseLoop
)

// LexError is returned by Translate. Position is the byte offset in the
// source; Byte is only set for InvalidInstruction.
type LexError struct {
	Kind     LexErrorKind
	Position int
	Byte     byte
}

func (e *LexError) Error() string {
	switch e.Kind {
	case InvalidInstruction:
		return fmt.Sprintf("%s %q (0x%02x) at %d",
			ErrInvalidInstruction, e.Byte, e.Byte, e.Position)
	case UnmatchedOpenLoop:
		return fmt.Sprintf("%s at %d", ErrUnmatchedOpenLoop, e.Position)
	default:
		return fmt.Sprintf("%s at %d", ErrUnmatchedCloseLoop, e.Position)
	}
}

// Unwrap returns the sentinel for the error kind.
func (e *LexError) Unwrap() error {
	switch e.Kind {
	case InvalidInstruction:
		return ErrInvalidInstruction
	case UnmatchedOpenLoop:
		return ErrUnmatchedOpenLoop
	default:
		return ErrUnmatchedCloseLoop
	}
}
