package components

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/playback"
	"github.com/user/vidcut-cli/tui/styles"
)

// StatusBarState holds the current playback state for the status bar.
type StatusBarState struct {
	State   playback.State
	File    string
	FPS     float64
	Speed   float64
	Message string
	IsError bool
}

// StatusBar renders a one-line bar: play state, file, rate and speed on
// the left, the latest status message on the right.
func StatusBar(state StatusBarState, width int) string {
	var icon string
	switch state.State {
	case playback.StatePlaying:
		icon = "▶"
	case playback.StatePaused:
		icon = "⏸"
	default:
		icon = "■"
	}

	left := fmt.Sprintf(" %s ", icon)
	if state.File != "" {
		left += fmt.Sprintf("%s  %.3f fps  %sx ", filepath.Base(state.File), state.FPS, formatSpeed(state.Speed))
	} else {
		left += "no video "
	}

	msgStyle := lipgloss.NewStyle().Foreground(styles.Green)
	if state.IsError {
		msgStyle = lipgloss.NewStyle().Foreground(styles.Red)
	}
	right := ""
	if state.Message != "" {
		room := width - lipgloss.Width(left) - 2
		if room > 3 {
			right = msgStyle.Render(truncate(state.Message, room)) + " "
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	content := left + spaces(padding) + right

	return lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		MaxWidth(width).
		Render(content)
}

// formatSpeed shows whole speeds without decimals.
func formatSpeed(speed float64) string {
	if speed == float64(int(speed)) {
		return fmt.Sprintf("%.0f", speed)
	}
	return fmt.Sprintf("%.2g", speed)
}
