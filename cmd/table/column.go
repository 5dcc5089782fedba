package table

// Alignment of text inside a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column of a track table.
type Column struct {
	Header   string
	Width    int     // fixed width, 0 means flexible
	MinWidth int     // lower bound for flexible columns
	Weight   float64 // share of the remaining space, 1 when unset
	Align    Alignment
}

func (c Column) weight() float64 {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

// Layout splits total cells between columns separated by gap cells.
// Fixed columns get their width first; flexible columns share what is left
// by weight. Rounding leftovers go to the last flexible column. No column
// is narrower than its MinWidth or 1.
func Layout(columns []Column, total, gap int) []int {
	if len(columns) == 0 {
		return nil
	}

	widths := make([]int, len(columns))
	remaining := max(total-gap*(len(columns)-1), 0)

	var weights float64
	lastFlex := -1
	for i, c := range columns {
		if c.Width > 0 {
			widths[i] = c.Width
			remaining -= c.Width
			continue
		}
		weights += c.weight()
		lastFlex = i
	}
	remaining = max(remaining, 0)

	if lastFlex >= 0 {
		used := 0
		for i, c := range columns {
			if c.Width > 0 {
				continue
			}
			widths[i] = int(float64(remaining) * c.weight() / weights)
			used += widths[i]
		}
		widths[lastFlex] += remaining - used
	}

	for i, c := range columns {
		widths[i] = max(widths[i], c.MinWidth, 1)
	}
	return widths
}
