package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1

	// tapeWindow is how many cells PrintState shows on each side of the
	// cursor.
	tapeWindow = 8
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState renders the machine registers and the tape around the cursor.
func PrintState(w io.Writer, m *Machine) {
	regTable := table.NewWriter()
	regTable.SetTitle("Machine")
	regTable.AppendHeader(table.Row{"PC", "Instruction", "Cursor", "Steps", "Tape Length"})

	inst := "-"
	if !m.Done() {
		inst = m.Program()[m.PC()].String()
	}

	regTable.AppendRow(table.Row{m.PC(), inst, m.Cursor(), m.Steps(), len(m.state.Tape)})
	fmt.Fprintln(w, regTable.Render())

	start := m.Cursor() - tapeWindow
	if start < 0 {
		start = 0
	}

	// The window always holds the cursor cell; cells past the end of the
	// tape read as zero.
	end := m.Cursor() + tapeWindow + 1
	if limit := max(len(m.state.Tape), m.Cursor()+1); end > limit {
		end = limit
	}

	tapeTable := table.NewWriter()
	tapeTable.SetTitle("Tape")

	header := table.Row{fmt.Sprintf("[%d, %d)", start, end)}
	values := table.Row{"Value"}
	for addr := start; addr < end; addr++ {
		label := fmt.Sprintf("%d", addr)
		if addr == m.Cursor() {
			label = fmt.Sprintf("*%d", addr)
		}

		var value byte
		if addr < len(m.state.Tape) {
			value = m.state.Tape[addr]
		}

		header = append(header, label)
		values = append(values, value)
	}

	tapeTable.AppendHeader(header)
	tapeTable.AppendRow(values)
	fmt.Fprintln(w, tapeTable.Render())
}

func LogState(m *Machine) {
	slog.Debug("StateCheckpoint",
		"PC", m.state.PC,
		"Cursor", m.state.Cursor,
		"Steps", m.state.Steps,
		"TapeLength", len(m.state.Tape),
	)
}
