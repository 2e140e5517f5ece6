package strings

import (
	"strings"
)

// MaxCellWidth is the widest value printed in a report cell.
const MaxCellWidth = 100

// minCellWidth leaves room for one character plus "...".
const minCellWidth = 4

// Cell flattens s onto one line and shortens it to at most width runes,
// marking the cut with "...". Runs of whitespace collapse to one space.
func Cell(s string, width int) string {
	if width < minCellWidth {
		width = minCellWidth
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
