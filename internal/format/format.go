package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
	CSV                  // Comma-separated values, header first
)

// ParseMode maps a flag or config value to a Mode. The empty string is ASCII.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii", "table":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	}
	return ASCII, fmt.Errorf("unknown output format %q (want ascii, markdown or csv)", s)
}

func (m Mode) String() string {
	switch m {
	case Markdown:
		return "markdown"
	case CSV:
		return "csv"
	default:
		return "ascii"
	}
}

// ColumnAlign specifies the horizontal alignment for a column.
type ColumnAlign int

const (
	AlignDefault ColumnAlign = iota
	AlignRight
)

// ColumnConfig controls per-column formatting.
type ColumnConfig struct {
	Number int         // 1-based column index
	Align  ColumnAlign // horizontal alignment
}

// TableBuilder is the project-owned table abstraction.
// Build a table once; render it via the Mode set at creation.
type TableBuilder interface {
	// Header sets the column headers.
	Header(cols ...string)
	// Row appends a data row. Values are converted to strings via fmt Sprint.
	Row(vals ...any)
	// Footer appends a footer row (e.g. totals).
	Footer(vals ...any)
	// Columns applies per-column alignment.
	Columns(cfgs ...ColumnConfig)
	// String renders the table in the configured Mode.
	String() string
}

// NewTable returns a TableBuilder that renders in the given Mode.
func NewTable(m Mode) TableBuilder {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	// Column keys are case-sensitive identifiers.
	w.Style().Format.Header = text.FormatDefault
	w.Style().Format.Footer = text.FormatDefault
	return &prettyAdapter{writer: w, mode: m}
}

// prettyAdapter wraps go-pretty/v6/table.Writer behind the TableBuilder interface.
type prettyAdapter struct {
	writer table.Writer
	mode   Mode
}

func (a *prettyAdapter) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	a.writer.AppendHeader(row)
}

func (a *prettyAdapter) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendRow(row)
}

func (a *prettyAdapter) Footer(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendFooter(row)
}

func (a *prettyAdapter) Columns(cfgs ...ColumnConfig) {
	goCfgs := make([]table.ColumnConfig, len(cfgs))
	for i, c := range cfgs {
		goCfgs[i] = table.ColumnConfig{
			Number: c.Number,
			Align:  toTextAlign(c.Align),
		}
	}
	a.writer.SetColumnConfigs(goCfgs)
}

func (a *prettyAdapter) String() string {
	switch a.mode {
	case Markdown:
		return a.writer.RenderMarkdown()
	case CSV:
		return a.writer.RenderCSV()
	default:
		return a.writer.Render()
	}
}

func toTextAlign(a ColumnAlign) text.Align {
	if a == AlignRight {
		return text.AlignRight
	}
	return text.AlignDefault
}
