package tui

import "charm.land/lipgloss/v2"

// Palette
var (
	colorPrimary   = lipgloss.Color("#6366F1") // Indigo
	colorSecondary = lipgloss.Color("#14B8A6") // Teal
	colorAccent    = lipgloss.Color("#F59E0B") // Amber
	colorSuccess   = lipgloss.Color("#22C55E")
	colorError     = lipgloss.Color("#F43F5E")
	colorText      = lipgloss.Color("#F8FAFC")
	colorTextDim   = lipgloss.Color("#94A3B8")
	colorBgCard    = lipgloss.Color("#1E293B")
	colorBorder    = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

// scoreStyle colours a 0-10 score by band.
func scoreStyle(v float64) lipgloss.Style {
	switch {
	case v >= 7:
		return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	case v >= 5:
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	}
}
