package components

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/tui/styles"
)

// ExportProgressState holds the state for the export progress display.
type ExportProgressState struct {
	Active   bool
	Fraction float64
	Output   string
	Elapsed  time.Duration
}

// ExportProgress renders a bordered info box with a progress bar, the
// percentage, the destination file and the elapsed time.
func ExportProgress(state ExportProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	frac := state.Fraction
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pct := int(frac * 100)

	// leave room for " XXX%"
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * frac)
	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", pct)),
		" " + textStyle.Render(truncate(filepath.Base(state.Output), innerW-2)),
		" " + styles.SecondaryText.Render(state.Elapsed.Truncate(100*time.Millisecond).String()),
	}
	return RenderInfoBox("Export", lines, width)
}
