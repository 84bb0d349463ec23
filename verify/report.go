package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/bfsim/program"
	"gopkg.in/yaml.v3"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	ProgramLength int
	LoopPairs     int
	LintIssues    []Issue
	Result        *FunctionalResult
	MaxSteps      int
}

// GenerateReport runs both lint and a functional run, returns a report
func GenerateReport(code program.Program, input []byte, maxSteps int) *VerificationReport {
	report := &VerificationReport{
		ProgramLength: len(code),
		MaxSteps:      maxSteps,
	}

	for _, inst := range code {
		if inst.Op == program.OpenLoop {
			report.LoopPairs++
		}
	}

	report.LintIssues = RunLint(code)
	report.Result = RunFunctional(code, input, maxSteps)

	return report
}

// OK reports whether lint found nothing and the run finished cleanly.
func (r *VerificationReport) OK() bool {
	return len(r.LintIssues) == 0 && r.Result.Err == nil
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nInstructions: %d (%d loop pairs)\n", r.ProgramLength, r.LoopPairs)

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n", len(r.LintIssues))
		for _, issue := range r.LintIssues {
			fmt.Fprintf(w, "  [%s @%d] %s\n", issue.Type, issue.Position, issue.Message)
		}
	}

	// STAGE 2: FUNCTIONAL RUN
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL RUN")
	fmt.Fprintln(w, separator)

	res := r.Result
	if res.Err == nil {
		fmt.Fprintf(w, "Completed in %d steps\n", res.Steps)
	} else {
		fmt.Fprintf(w, "Stopped after %d steps: %v\n", res.Steps, res.Err)
	}
	fmt.Fprintf(w, "Output (%d bytes): %q\n", len(res.Output), res.Output)
	fmt.Fprintf(w, "Cursor: %d, tape length: %d\n", res.Cursor, len(res.Tape))

	// SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	if r.OK() {
		fmt.Fprintln(w, "PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "PROGRAM NEEDS ATTENTION")
	}

	fmt.Fprintln(w)
}

type yamlReport struct {
	Instructions int     `yaml:"instructions"`
	LoopPairs    int     `yaml:"loop_pairs"`
	MaxSteps     int     `yaml:"max_steps"`
	Issues       []Issue `yaml:"issues"`
	Run          yamlRun `yaml:"run"`
	OK           bool    `yaml:"ok"`
}

type yamlRun struct {
	Steps  uint64 `yaml:"steps"`
	PC     int    `yaml:"pc"`
	Cursor int    `yaml:"cursor"`
	Output string `yaml:"output"`
	Tape   []int  `yaml:"tape,flow"`
	Error  string `yaml:"error,omitempty"`
}

// WriteYAML writes the report in a machine-readable form.
func (r *VerificationReport) WriteYAML(w io.Writer) error {
	doc := yamlReport{
		Instructions: r.ProgramLength,
		LoopPairs:    r.LoopPairs,
		MaxSteps:     r.MaxSteps,
		Issues:       r.LintIssues,
		OK:           r.OK(),
		Run: yamlRun{
			Steps:  r.Result.Steps,
			PC:     r.Result.PC,
			Cursor: r.Result.Cursor,
			Output: string(r.Result.Output),
			Tape:   make([]int, len(r.Result.Tape)),
		},
	}

	for i, cell := range r.Result.Tape {
		doc.Run.Tape[i] = int(cell)
	}

	if r.Result.Err != nil {
		doc.Run.Error = r.Result.Err.Error()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return enc.Close()
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return r.WriteYAML(file)
	}

	r.WriteReport(file)
	return nil
}
