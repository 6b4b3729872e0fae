package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls how a column's cells are padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a simple styled table renderer. Widths are measured on the
// visible text, so cells may carry their own styling.
type Table struct {
	headers []string
	aligns  []Align
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visualLen(h)
	}
	return &Table{
		headers: headers,
		aligns:  make([]Align, len(headers)),
		widths:  widths,
	}
}

// AlignRight right-aligns the given columns, typically numeric ones.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.aligns) {
			t.aligns[c] = AlignRight
		}
	}
	return t
}

// AddRow adds a row of values. Missing values render empty and extra
// values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if w := visualLen(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, StyleHeader.Render)

	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	for _, row := range t.rows {
		t.writeRow(&sb, row, nil)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, cells []string, style func(...string) string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		var s string
		if t.aligns[i] == AlignRight {
			s = padLeft(cell, t.widths[i])
		} else {
			s = pad(cell, t.widths[i])
		}
		if style != nil {
			s = style(s)
		}
		sb.WriteString(s)
	}
	sb.WriteString("\n")
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Fprint writes the table to w.
func (t *Table) Fprint(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

// visualLen is the printed width of s, ignoring ANSI escapes.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

// pad right-pads a string to the given visible width.
func pad(s string, width int) string {
	n := visualLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft left-pads a string to the given visible width.
func padLeft(s string, width int) string {
	n := visualLen(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
