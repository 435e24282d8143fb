package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	minWidth  = 60
	minHeight = 20
)

type keyHint struct {
	Key         string
	Description string
}

func tooSmall(width, height int) bool {
	return width < minWidth || height < minHeight
}

func renderMinSize(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(colorText).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			minWidth, minHeight, width, height,
		))
}

// renderHeader shows the app name, the screen title and the clock.
func renderHeader(title, right string, width int) string {
	left := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("  Mock Interview")
	center := lipgloss.NewStyle().Foreground(colorText).Render(title)
	rightR := lipgloss.NewStyle().Foreground(colorAccent).Render(right)

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(rightR), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + rightR
	return lipgloss.NewStyle().
		Width(width).
		Background(colorBgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Render(content)
}

func renderFooter(hints []keyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(h.Key)+" "+dimStyle.Render(h.Description))
	}
	return lipgloss.NewStyle().
		Width(width).
		Background(colorBgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Render("  " + strings.Join(parts, "   "))
}

func renderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return header + "\n" + body + "\n" + footer
}

// progressBar renders done/total as a filled bar of the given width.
func progressBar(label string, done, total, width int) string {
	out := ""
	if label != "" {
		out = bodyStyle.Render(label) + "  "
	}
	barWidth := max(width-lipgloss.Width(out), 4)
	filled := 0
	if total > 0 {
		filled = min(barWidth*done/total, barWidth)
	}
	out += lipgloss.NewStyle().Background(colorSecondary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(colorBorder).Render(strings.Repeat(" ", barWidth-filled))
	return out
}
