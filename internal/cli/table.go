package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Table is a plain-text table formatter with dynamic column widths. The
// last column absorbs any overflow when the rendered width would exceed
// the terminal.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	width   int
}

// NewTable creates a table with the given headers, sized to the current
// terminal when stdout is one.
func NewTable(headers []string) *Table {
	t := &Table{
		headers: headers,
		padding: 2,
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		t.width = w
	}
	return t
}

// AddRow adds a row. Short rows are padded to the header count; long rows
// are truncated to it.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats the table as a string, one trailing newline per line.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Shrink the last column when the table would not fit the terminal.
	if t.width > 0 {
		total := t.padding * (len(widths) - 1)
		for _, w := range widths {
			total += w
		}
		last := len(widths) - 1
		if total > t.width && widths[last] > total-t.width {
			widths[last] -= total - t.width
		}
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)

	writeRow := func(cells []string) {
		parts := make([]string, len(t.headers))
		for i := range t.headers {
			cell := ""
			if i < len(cells) {
				cell = truncate(cells[i], widths[i])
			}
			parts[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	writeRow(t.headers)

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(seps, gap))
	b.WriteString("\n")

	for _, row := range t.rows {
		writeRow(row)
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if len(s) <= width || width < 4 {
		return s
	}
	return s[:width-3] + "..."
}
