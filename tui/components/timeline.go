package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/pkg/timeutil"
	"github.com/user/vidcut-cli/tui/styles"
)

// TimelineState is everything the timeline draws.
type TimelineState struct {
	Position  int
	Total     int
	FPS       float64
	Bookmarks []int
	// Cut window in frames, drawn when HasCut is set.
	CutStart int
	CutEnd   int
	HasCut   bool
}

// cell maps a frame to a bar column.
func (s TimelineState) cell(frame, barWidth int) int {
	if s.Total <= 1 || barWidth <= 1 {
		return 0
	}
	pos := frame * (barWidth - 1) / (s.Total - 1)
	if pos < 0 {
		return 0
	}
	if pos >= barWidth {
		return barWidth - 1
	}
	return pos
}

// Timeline renders a bordered progress bar with the playhead, bookmark
// markers (◆) and the resolved cut window (amber). Output is 4 lines.
func Timeline(state TimelineState, width int) string {
	if width < 20 {
		return ""
	}

	filledStyle := lipgloss.NewStyle().Foreground(styles.BrightPurple)
	unfilledStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	cutStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	current := timeutil.FormatClock(timeutil.FrameSeconds(state.Position, state.FPS))
	total := timeutil.FormatClock(timeutil.FrameSeconds(state.Total, state.FPS))
	timeDisplay := fmt.Sprintf(" %s / %s", current, total)

	// 2 border chars, 1 left margin, 1 space before the time
	barWidth := width - 4 - lipgloss.Width(timeDisplay)
	if barWidth < 10 {
		barWidth = 10
	}

	playhead := state.cell(state.Position, barWidth)
	markers := make([]bool, barWidth)
	for _, f := range state.Bookmarks {
		markers[state.cell(f, barWidth)] = true
	}
	cutFrom, cutTo := -1, -1
	if state.HasCut {
		cutFrom, cutTo = state.cell(state.CutStart, barWidth), state.cell(state.CutEnd, barWidth)
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == playhead:
			bar.WriteString(posStyle.Render("┃"))
		case markers[i]:
			bar.WriteString(markerStyle.Render("◆"))
		case i >= cutFrom && i <= cutTo:
			bar.WriteString(cutStyle.Render("▬"))
		case i < playhead:
			bar.WriteString(filledStyle.Render("━"))
		default:
			bar.WriteString(unfilledStyle.Render("─"))
		}
	}

	frameLine := fmt.Sprintf(" frame %d / %d", state.Position, maxInt(state.Total-1, 0))
	if state.HasCut {
		frameLine += cutStyle.Render(fmt.Sprintf("   cut %d → %d", state.CutStart, state.CutEnd))
	}

	return RenderInfoBox("Timeline", []string{
		" " + bar.String() + " " + timeStyle.Render(timeDisplay),
		styles.SecondaryText.Render(frameLine),
	}, width)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
