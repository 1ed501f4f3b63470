package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/vidcut-cli/bookmark"
	"github.com/user/vidcut-cli/tui/styles"
)

// BookmarkList renders the bookmarks of the loaded video.
func BookmarkList(items []bookmark.Bookmark, state ListState, width, height int, focused bool) string {
	rowsHeight := height - 2
	if rowsHeight < 1 {
		rowsHeight = 1
	}

	title := fmt.Sprintf("Bookmarks (%d)", len(items))
	if len(items) == 0 {
		hint := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(" b to add")
		return RenderPanel(title, []string{hint}, width, focused)
	}

	rows := make([]string, len(items))
	for i, b := range items {
		rows[i] = b.Label()
	}
	return RenderPanel(title, renderRows(rows, state, width-2, rowsHeight, focused), width, focused)
}
