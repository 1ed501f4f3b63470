package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vidcut-cli/tui/layout"
	"github.com/user/vidcut-cli/tui/styles"
)

// Modal renders an error dialog centred on a width x height screen.
func Modal(title, body string, width, height int) string {
	maxW := width - 8
	if maxW > 90 {
		maxW = 90
	}
	if maxW < 20 {
		maxW = 20
	}

	titleStyle := lipgloss.NewStyle().Foreground(styles.Red).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	footerStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)

	wrapped := ansi.Wrap(body, maxW-6, " ")
	bodyLines := strings.Split(wrapped, "\n")
	// Encoder output can be long; the tail is what matters.
	if limit := height - 10; limit > 3 && len(bodyLines) > limit {
		bodyLines = append([]string{"…"}, bodyLines[len(bodyLines)-limit+1:]...)
	}

	content := titleStyle.Render(title) + "\n\n" +
		bodyStyle.Render(strings.Join(bodyLines, "\n")) + "\n\n" +
		footerStyle.Render("Press any key to close")

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Red).
		Padding(1, 2).
		Render(content)

	return layout.Center(panel, width, height)
}
