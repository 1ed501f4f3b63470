package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadToWidth fits s to exactly width terminal cells, cutting styled or
// wide runes cleanly and filling the remainder with spaces.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// NormalizeLines returns exactly height rows, dropping overflow and
// appending blank rows. The input slice is never written to.
func NormalizeLines(lines []string, height int) []string {
	height = max(height, 0)
	out := make([]string, height)
	copy(out, lines)
	return out
}
