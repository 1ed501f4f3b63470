package components

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vidcut-cli/tui/styles"
)

// ListState is the selection and scroll position of a list.
type ListState struct {
	Selected int
	Offset   int
}

// MoveUp selects the previous row.
func (s *ListState) MoveUp() {
	if s.Selected > 0 {
		s.Selected--
	}
}

// MoveDown selects the next row of a list with n rows.
func (s *ListState) MoveDown(n int) {
	if s.Selected < n-1 {
		s.Selected++
	}
}

// Clamp keeps the selection inside a list of n rows.
func (s *ListState) Clamp(n int) {
	if s.Selected >= n {
		s.Selected = n - 1
	}
	if s.Selected < 0 {
		s.Selected = 0
	}
}

// scroll adjusts Offset so the selection is visible in height rows.
func (s *ListState) scroll(height int) {
	if height <= 0 {
		return
	}
	if s.Selected < s.Offset {
		s.Offset = s.Selected
	}
	if s.Selected >= s.Offset+height {
		s.Offset = s.Selected - height + 1
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

// renderRows renders the visible window of rows, highlighting the selection.
func renderRows(rows []string, state ListState, width, height int, focused bool) []string {
	state.scroll(height)

	var out []string
	for i := state.Offset; i < len(rows) && len(out) < height; i++ {
		row := ansi.Truncate(" "+rows[i], width, "…")
		switch {
		case i == state.Selected && focused:
			row = styles.Highlight.Width(width).Render(row)
		case i == state.Selected:
			row = styles.Selected.Render(row)
		default:
			row = styles.SecondaryText.Render(row)
		}
		out = append(out, row)
	}
	return out
}
