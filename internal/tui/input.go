package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// maxAnswerChars bounds a typed transcript.
const maxAnswerChars = 4000

// answerInput wraps bubbles/textinput for typed answers.
type answerInput struct {
	model textinput.Model
}

func newAnswerInput() answerInput {
	ti := textinput.New()
	ti.Placeholder = "Type your answer and press Enter..."
	ti.CharLimit = maxAnswerChars
	ti.Focus()
	return answerInput{model: ti}
}

func (a answerInput) Init() tea.Cmd {
	return a.model.Focus()
}

func (a answerInput) Update(msg tea.Msg) (answerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.model, cmd = a.model.Update(msg)
	return a, cmd
}

func (a answerInput) View() string {
	return a.model.View()
}

// Value returns the trimmed answer.
func (a answerInput) Value() string {
	return strings.TrimSpace(a.model.Value())
}

func (a *answerInput) Reset() {
	a.model.Reset()
}

func (a *answerInput) SetWidth(w int) {
	a.model.SetWidth(w)
}
