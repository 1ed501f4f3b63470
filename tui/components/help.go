package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidcut-cli/tui/layout"
	"github.com/user/vidcut-cli/tui/styles"
)

// HelpGroup is a titled set of key bindings.
type HelpGroup struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay renders the help overlay showing all keybindings, grouped by
// function and centred on screen.
func HelpOverlay(groups []HelpGroup, width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	lines := []string{titleStyle.Render("Keybindings"), ""}
	for _, group := range groups {
		lines = append(lines, groupHeaderStyle.Render(group.Title))
		for _, b := range group.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			lines = append(lines, "  "+keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
		}
	}

	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, footerStyle.Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return layout.Center(panel, width, height)
}
