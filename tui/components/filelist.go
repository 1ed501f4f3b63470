package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/user/vidcut-cli/library"
	"github.com/user/vidcut-cli/tui/styles"
)

// FileList renders the videos of the current folder. The loaded file is
// marked with a play glyph.
func FileList(entries []library.Entry, state ListState, loaded string, width, height int, focused bool) string {
	inner := width - 2
	rowsHeight := height - 2
	if rowsHeight < 1 {
		rowsHeight = 1
	}

	if len(entries) == 0 {
		empty := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(" no videos here")
		return RenderPanel("Files", []string{empty}, width, focused)
	}

	rows := make([]string, len(entries))
	for i, e := range entries {
		mark := "  "
		if e.Path == loaded {
			mark = "▶ "
		}
		size := humanize.Bytes(uint64(e.Size))
		name := e.Name
		room := inner - 3 - lipgloss.Width(mark) - len(size)
		if room < 4 {
			room = 4
		}
		if lipgloss.Width(name) > room {
			name = truncate(name, room)
		}
		pad := inner - 3 - lipgloss.Width(mark) - lipgloss.Width(name) - len(size)
		if pad < 1 {
			pad = 1
		}
		rows[i] = mark + name + spaces(pad) + size
	}

	return RenderPanel("Files", renderRows(rows, state, inner, rowsHeight, focused), width, focused)
}
