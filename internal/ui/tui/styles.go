package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("#374151"))

	cursorRowStyle = rowStyle.
			Background(lipgloss.Color("#4B5563"))

	currentRowStyle = rowStyle.
			Bold(true).
			Background(lipgloss.Color("#4F46E5"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("#374151"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)
)

// Icons
const (
	iconMusic   = "♫"
	iconBack    = "←"
	iconPlay    = "▶"
	iconPause   = "⏸"
	iconVolume  = "🔊"
	iconMuted   = "🔇"
	iconCurrent = "♪"
	iconCursor  = "›"
)
