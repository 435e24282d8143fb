package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/interview"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render lays out the current phase for the last known window size.
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if tooSmall(m.width, m.height) {
		return renderMinSize(m.width, m.height)
	}

	header := renderHeader(m.title(), m.clock(), m.width)
	footer := renderFooter(m.hints(), m.width)
	return renderFrame(header, m.content(m.width-4), footer, m.width, m.height)
}

func (m *Model) title() string {
	if m.start == nil || m.done() {
		return "Practice"
	}
	return fmt.Sprintf("Question %d of %d", m.current+1, len(m.start.Questions))
}

func (m *Model) clock() string {
	if m.start == nil || m.done() {
		return ""
	}
	r := m.remaining().Round(time.Second)
	return fmt.Sprintf("%d:%02d left", int(r.Minutes()), int(r.Seconds())%60)
}

func (m *Model) hints() []keyHint {
	switch m.phase {
	case phaseAnswering:
		return []keyHint{{"Enter", "Submit"}, {"Esc", "Finish"}, {"Ctrl+C", "Quit"}}
	case phaseFeedback:
		return []keyHint{{"any key", "Continue"}}
	case phaseSummary, phaseError:
		return []keyHint{{"Enter", "Exit"}}
	default:
		return []keyHint{{"Ctrl+C", "Quit"}}
	}
}

func (m *Model) content(width int) string {
	switch m.phase {
	case phaseStarting:
		return hintStyle.Render("\n  Preparing your questions...")
	case phaseAnswering:
		return m.renderQuestion(width)
	case phaseScoring:
		return m.renderQuestion(width) + "\n\n" + hintStyle.Render("  Scoring your answer...")
	case phaseFeedback:
		return m.renderFeedback(width)
	case phaseFinishing:
		return hintStyle.Render("\n  Building your summary...")
	case phaseSummary:
		return m.renderSummary(width)
	case phaseError:
		return "\n  " + errorStyle.Render("Something went wrong") + "\n\n  " + bodyStyle.Render(m.err.Error())
	}
	return ""
}

func (m *Model) renderQuestion(width int) string {
	q := m.start.Questions[m.current]
	var b strings.Builder

	b.WriteString(progressBar("Progress", m.current, len(m.start.Questions), width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(string(q.Kind)))
	b.WriteString("\n")
	b.WriteString(cardStyle.Width(width).Render(titleStyle.Render(q.Text)))
	b.WriteString("\n\n")
	b.WriteString("Answer: " + m.input.View())
	return b.String()
}

func (m *Model) renderFeedback(width int) string {
	s := m.result.Score
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render("Score"), scoreStyle(s.Overall).Render(fmt.Sprintf("%.1f / 10", s.Overall)))
	for _, row := range []struct {
		label string
		v     float64
	}{
		{"Communication", s.Communication},
		{"Technical knowledge", s.TechnicalKnowledge},
		{"Problem solving", s.ProblemSolving},
	} {
		fmt.Fprintf(&b, "  %-20s %s\n", row.label, scoreStyle(row.v).Render(fmt.Sprintf("%.1f", row.v)))
	}
	if s.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(cardStyle.Width(width).Render(bodyStyle.Render(s.Feedback)))
	}
	if m.result.Degraded {
		b.WriteString("\n" + hintStyle.Render("  Automatic scoring was unavailable for this answer."))
	}
	if m.result.Followup != nil {
		b.WriteString("\n\n" + titleStyle.Render("Follow-up to think about: ") + bodyStyle.Render(*m.result.Followup))
	}
	return b.String()
}

func (m *Model) renderSummary(width int) string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString(hintStyle.Render("  "+m.notice) + "\n\n")
	}
	sum := m.summary
	if sum == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "%s  %s   %s\n\n",
		titleStyle.Render("Decision"),
		scoreStyle(sum.OverallScore).Render(sum.Decision),
		dimStyle.Render(fmt.Sprintf("%d of %d answered", sum.AnsweredQuestions, sum.TotalQuestions)))
	fmt.Fprintf(&b, "  %-20s %s\n", "Overall", scoreStyle(sum.OverallScore).Render(fmt.Sprintf("%.1f", sum.OverallScore)))
	fmt.Fprintf(&b, "  %-20s %.1f\n", "Communication", sum.AvgCommunication)
	fmt.Fprintf(&b, "  %-20s %.1f\n", "Technical knowledge", sum.AvgTechnical)
	fmt.Fprintf(&b, "  %-20s %.1f\n\n", "Problem solving", sum.AvgProblemSolving)

	b.WriteString(cardStyle.Width(width).Render(bodyStyle.Render(sum.Narrative)))
	b.WriteString("\n")
	writeList(&b, "Strengths", sum.Strengths, colorSuccess)
	writeList(&b, "Areas for improvement", sum.Improvements, colorAccent)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string, c color.Color) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(c).Bold(true).Render(title) + "\n")
	for _, it := range items {
		b.WriteString("  • " + bodyStyle.Render(it) + "\n")
	}
}

// Decision is exposed for callers printing a plain-text result after the
// program exits.
func Decision(s *interview.Summary) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s (%.1f/10, %d of %d answered)", s.Decision, s.OverallScore, s.AnsweredQuestions, s.TotalQuestions)
}
