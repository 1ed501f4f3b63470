package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth  = 60 // below this the TUI asks for a wider terminal
	SideHideThreshold = 90 // below this width the left column is hidden
	LeftWidth         = 28 // file list and bookmarks
	RightWidth        = 32 // cut panel
)

// ComputeColumnWidths splits the terminal into the file column, the preview
// column and the cut column. Narrow terminals drop the file column and give
// its space to the preview.
func ComputeColumnWidths(termWidth int) (left, center, right int, showLeft bool) {
	showLeft = termWidth >= SideHideThreshold

	if showLeft {
		// 2 border characters between three columns
		usable := termWidth - 2
		left = LeftWidth
		right = RightWidth
		if termWidth >= 160 {
			left += 6
			right += 4
		}
		center = usable - left - right
		return
	}

	usable := termWidth - 1
	right = RightWidth
	if usable-right < 20 {
		right = usable / 2
	}
	center = usable - right
	return
}

// JoinColumns joins pre-rendered column strings side by side with purple border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	var rows []string
	for row := 0; row < height; row++ {
		var parts []string
		for i, lines := range colLines {
			parts = append(parts, PadToWidth(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}
