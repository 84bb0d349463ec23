// Package verify provides debugging tools for tape programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): structural checks on a translated program
//   - UNDERFLOW: the straight-line prefix moves the cursor left of cell 0
//   - INFINITE_LOOP: a loop body that can never change the tested cell
//   - DEAD_LOOP: a loop reached while every cell is still zero
//
// 2. Functional Run (funcsim.go): executes the program on an in-memory
// console with an optional step limit and records output, tape and error.
//
// The step limit belongs to verification only; core.Machine itself never
// bounds execution.
package verify

// IssueType classifies lint findings.
type IssueType string

const (
	IssueUnderflow    IssueType = "UNDERFLOW"
	IssueInfiniteLoop IssueType = "INFINITE_LOOP"
	IssueDeadLoop     IssueType = "DEAD_LOOP"
)

// Issue is a single lint finding. Position is the instruction index the
// finding is anchored to.
type Issue struct {
	Type     IssueType `yaml:"type"`
	Position int       `yaml:"position"`
	Message  string    `yaml:"message"`
}
