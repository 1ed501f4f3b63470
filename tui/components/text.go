package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
