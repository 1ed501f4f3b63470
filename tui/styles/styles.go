// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink marks headers and the playhead
	Pink = lipgloss.Color("#D33061")
	// Cyan marks bookmarks and interactive elements
	Cyan = lipgloss.Color("#3097C6")
	// Amber marks the cut window
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages
	Green = lipgloss.Color("#A6A75D")
)

// Highlight is the style for the selected row of a focused list.
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// Selected is the selected row of a list that does not have focus.
var Selected = lipgloss.NewStyle().
	Foreground(LightLavender).
	Underline(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Disabled renders inputs that the current cut mode ignores.
var Disabled = lipgloss.NewStyle().
	Foreground(Purple).
	Strikethrough(true)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
