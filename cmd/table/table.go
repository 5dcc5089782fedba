package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders a scrolling list of rows with a header and a highlighted
// cursor row.
type Table struct {
	Columns []Column
	Rows    [][]string

	Cursor int // highlighted row, -1 for none
	Marked int // row drawn with MarkedStyle, -1 for none
	Offset int // first visible row
	Height int // visible rows, 0 shows all
	Width  int
	Gap    int

	HeaderStyle lipgloss.Style
	CursorStyle lipgloss.Style
	MarkedStyle lipgloss.Style
}

// New creates a table sized for the current terminal.
func New(columns ...Column) *Table {
	return &Table{
		Columns:     columns,
		Cursor:      -1,
		Marked:      -1,
		Width:       DefaultTerminalWidth,
		Gap:         2,
		HeaderStyle: lipgloss.NewStyle().Bold(true),
		CursorStyle: lipgloss.NewStyle().Reverse(true),
		MarkedStyle: lipgloss.NewStyle(),
	}
}

// Follow scrolls the viewport so the cursor row is visible.
func (t *Table) Follow() {
	if t.Height <= 0 {
		t.Offset = 0
		return
	}
	if t.Cursor >= 0 {
		if t.Cursor < t.Offset {
			t.Offset = t.Cursor
		}
		if t.Cursor >= t.Offset+t.Height {
			t.Offset = t.Cursor - t.Height + 1
		}
	}
	t.Offset = min(max(t.Offset, 0), max(len(t.Rows)-t.Height, 0))
}

func (t *Table) visible() (start, end int) {
	start = min(max(t.Offset, 0), len(t.Rows))
	end = len(t.Rows)
	if t.Height > 0 {
		end = min(start+t.Height, end)
	}
	return start, end
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = Fit(cell, widths[i], c.Align)
	}
	return strings.Join(parts, strings.Repeat(" ", t.Gap))
}

// Render draws the header, a rule and the visible rows.
func (t *Table) Render() string {
	widths := Layout(t.Columns, t.Width, t.Gap)
	if len(widths) == 0 {
		return ""
	}

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}

	lines := []string{
		t.HeaderStyle.Render(t.line(headers, widths)),
		strings.Repeat("─", Width(t.line(headers, widths))),
	}

	start, end := t.visible()
	for i := start; i < end; i++ {
		line := t.line(t.Rows[i], widths)
		switch {
		case i == t.Cursor && i == t.Marked:
			line = t.CursorStyle.Inherit(t.MarkedStyle).Render(line)
		case i == t.Cursor:
			line = t.CursorStyle.Render(line)
		case i == t.Marked:
			line = t.MarkedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
