package verify

import (
	"fmt"

	"github.com/sarchlab/bfsim/program"
)

// RunLint performs static checks on a program and returns the issues found,
// ordered by check and then by position.
func RunLint(code program.Program) []Issue {
	var issues []Issue

	issues = append(issues, checkPrefixUnderflow(code)...)
	issues = append(issues, checkInfiniteLoops(code)...)
	issues = append(issues, checkDeadLoops(code)...)

	return issues
}

// checkPrefixUnderflow follows the cursor through the instructions before
// the first loop, where its position is known statically.
func checkPrefixUnderflow(code program.Program) []Issue {
	offset := 0

	for pc, inst := range code {
		switch inst.Op {
		case program.OpenLoop:
			return nil
		case program.MoveRight:
			offset++
		case program.MoveLeft:
			if offset == 0 {
				return []Issue{{
					Type:     IssueUnderflow,
					Position: pc,
					Message:  fmt.Sprintf("cursor moves left of cell 0 at instruction %d", pc),
				}}
			}
			offset--
		}
	}

	return nil
}

// checkInfiniteLoops flags loops whose body, nested loops included, never
// moves the cursor, changes a cell or reads input. Such a loop tests the
// same unchanged cell forever once entered.
func checkInfiniteLoops(code program.Program) []Issue {
	var issues []Issue

	for pc, inst := range code {
		if inst.Op != program.OpenLoop {
			continue
		}

		if !bodyHasEffect(code[pc+1 : inst.Target]) {
			issues = append(issues, Issue{
				Type:     IssueInfiniteLoop,
				Position: pc,
				Message: fmt.Sprintf("loop %d..%d never changes its condition cell",
					pc, inst.Target),
			})
		}
	}

	return issues
}

func bodyHasEffect(body program.Program) bool {
	for _, inst := range body {
		switch inst.Op {
		case program.MoveRight, program.MoveLeft,
			program.Increment, program.Decrement, program.Read:
			return true
		}
	}

	return false
}

// checkDeadLoops flags loops reached before any cell can hold a non-zero
// value. Their bodies are skipped unconditionally.
func checkDeadLoops(code program.Program) []Issue {
	var issues []Issue

	for pc := 0; pc < len(code); {
		inst := code[pc]

		switch inst.Op {
		case program.Increment, program.Decrement, program.Read:
			return issues
		case program.OpenLoop:
			issues = append(issues, Issue{
				Type:     IssueDeadLoop,
				Position: pc,
				Message: fmt.Sprintf("loop %d..%d starts on a zero cell and never runs",
					pc, inst.Target),
			})
			pc = inst.Target + 1
		default:
			pc++
		}
	}

	return issues
}
