package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Width returns the display width of s in terminal cells, ignoring ANSI
// escape codes.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate shortens s to at most w cells, ending in an ellipsis when cut.
// Wide runes are never split.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if Width(s) <= w {
		return s
	}
	if w == 1 {
		return ellipsis
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > w-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString(ellipsis)
	return b.String()
}

// Fit truncates or pads s to exactly w cells.
func Fit(s string, w int, align Alignment) string {
	if w <= 0 {
		return ""
	}
	s = Truncate(s, w)
	pad := strings.Repeat(" ", max(w-Width(s), 0))
	if align == AlignRight {
		return pad + s
	}
	return s + pad
}
