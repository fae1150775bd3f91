// Package theme holds the colors and shared text styles of the terminal UI.
package theme

import "charm.land/lipgloss/v2"

// Palette. Dark background with an indigo brand color; green and red are
// kept for answer verdicts only.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")

	Text    = lipgloss.Color("#E5E7EB")
	TextDim = lipgloss.Color("#9CA3AF")
	BgCard  = lipgloss.Color("#1F2937")
	Border  = lipgloss.Color("#374151")
)

var (
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Disabled   = lipgloss.NewStyle().Foreground(Border)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)
