package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/cut"
	"github.com/user/vidcut-cli/pkg/timeutil"
	"github.com/user/vidcut-cli/tui/styles"
)

// CutField is one row of the cut panel.
type CutField struct {
	Label    string
	View     string // rendered input
	Active   bool   // used by the current mode
	Selected bool
}

// CutPanelState holds what the cut panel shows.
type CutPanelState struct {
	Mode   cut.Mode
	Unit   cut.Unit
	Seek   cut.SeekMode
	Fields []CutField
	// Resolved window, if the current input resolves.
	Window    *cut.Window
	FPS       float64
	Output    string
	Focused   bool
	Exporting bool
}

// CutPanel renders the cut parameters and a preview of the resolved window.
func CutPanel(state CutPanelState, width int) string {
	label := lipgloss.NewStyle().Foreground(styles.Lavender).Width(10)
	value := lipgloss.NewStyle().Foreground(styles.LightLavender)
	key := lipgloss.NewStyle().Foreground(styles.Purple)

	lines := []string{
		" " + label.Render("Mode") + value.Render(state.Mode.String()) + key.Render("  m"),
		" " + label.Render("Unit") + value.Render(state.Unit.String()) + key.Render("  u"),
		" " + label.Render("Seek") + value.Render(state.Seek.String()) + key.Render("  a"),
		"",
	}

	for _, f := range state.Fields {
		cursor := "  "
		if f.Selected && state.Focused {
			cursor = lipgloss.NewStyle().Foreground(styles.Cyan).Render("▸ ")
		}
		row := cursor + label.Render(f.Label)
		if f.Active {
			row += f.View
		} else {
			row = cursor + styles.Disabled.Render(fmt.Sprintf("%-10s", f.Label)) +
				lipgloss.NewStyle().Foreground(styles.Purple).Render("(derived)")
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	if state.Window != nil {
		start, dur := state.Window.Seconds(state.FPS)
		cutStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		lines = append(lines,
			cutStyle.Render(fmt.Sprintf(" %d → %d (%d frames)", state.Window.StartFrame, state.Window.EndFrame(), state.Window.DurationFrames)),
			cutStyle.Render(fmt.Sprintf(" %s + %s", timeutil.FormatClock(start), timeutil.FormatClock(dur))),
		)
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(" incomplete"))
	}
	if state.Output != "" {
		lines = append(lines, styles.SecondaryText.Render(" → "+truncate(state.Output, width-6)))
	}

	hint := " x export"
	if state.Exporting {
		hint = " esc cancel"
	}
	lines = append(lines, "", key.Render(hint))

	return RenderPanel("Cut", lines, width, state.Focused)
}
