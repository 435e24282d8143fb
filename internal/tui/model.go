// Package tui runs a local mock interview in the terminal against the
// interview engine.
package tui

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/interview"
)

type phase int

const (
	phaseStarting phase = iota
	phaseAnswering
	phaseScoring
	phaseFeedback
	phaseFinishing
	phaseSummary
	phaseError
)

type startedMsg struct {
	res *interview.StartResult
	err error
}

type submittedMsg struct {
	res *interview.SubmitResult
	err error
}

type summaryMsg struct {
	sum *interview.Summary
	err error
}

type tickMsg time.Time

// Model is the bubbletea model for one practice interview.
type Model struct {
	ctx    context.Context
	engine *interview.Engine
	owner  string
	req    interview.StartRequest

	phase   phase
	start   *interview.StartResult
	current int
	result  *interview.SubmitResult
	summary *interview.Summary
	// notice explains why the interview ended early, if it did.
	notice string
	err    error

	input  answerInput
	width  int
	height int
}

// NewModel prepares a model that starts a session for owner on Init.
func NewModel(ctx context.Context, engine *interview.Engine, owner string, req interview.StartRequest) *Model {
	return &Model{
		ctx:    ctx,
		engine: engine,
		owner:  owner,
		req:    req,
		input:  newAnswerInput(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.input.Init(), tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(msg.Width-12, 20))
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.start = msg.res
		m.phase = phaseAnswering
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case summaryMsg:
		m.phase = phaseSummary
		switch {
		case msg.err == nil:
			m.summary = msg.sum
		case errors.Is(msg.err, interview.ErrNoAnswersYet):
			m.notice = "No answers were submitted."
		default:
			m.fail(msg.err)
		}
		return m, nil

	case tickMsg:
		if m.done() {
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAnswering:
		switch key {
		case "enter":
			transcript := m.input.Value()
			if transcript == "" {
				return m, nil
			}
			m.phase = phaseScoring
			return m, m.submitCmd(m.current, transcript)
		case "esc":
			m.notice = "Interview ended early."
			return m, m.finishCmd()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseFeedback:
		if m.result.Completed || m.result.NextQuestionIndex == nil {
			return m, m.finishCmd()
		}
		m.current = *m.result.NextQuestionIndex
		m.result = nil
		m.phase = phaseAnswering
		return m, nil

	case phaseSummary, phaseError:
		switch key {
		case "enter", "esc", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, interview.ErrTimeLimitExceeded):
			m.notice = "Time is up."
			return m, m.finishCmd()
		case errors.Is(msg.err, interview.ErrAlreadyCompleted):
			return m, m.finishCmd()
		}
		m.fail(msg.err)
		return m, nil
	}
	m.result = msg.res
	m.input.Reset()
	m.phase = phaseFeedback
	return m, nil
}

func (m *Model) fail(err error) {
	m.err = err
	m.phase = phaseError
}

func (m *Model) done() bool {
	return m.phase == phaseSummary || m.phase == phaseError
}

// remaining is the time left before the session expires.
func (m *Model) remaining() time.Duration {
	if m.start == nil {
		return 0
	}
	return max(m.start.CreatedAt.Add(m.start.TimeLimit).Sub(m.engine.Now()), 0)
}

func (m *Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.engine.StartSession(m.ctx, m.owner, m.req)
		return startedMsg{res: res, err: err}
	}
}

func (m *Model) submitCmd(index int, transcript string) tea.Cmd {
	id := m.start.SessionID
	return func() tea.Msg {
		res, err := m.engine.SubmitAnswer(m.ctx, interview.SubmitRequest{
			SessionID:     id,
			OwnerID:       m.owner,
			QuestionIndex: index,
			Transcript:    transcript,
		})
		return submittedMsg{res: res, err: err}
	}
}

func (m *Model) finishCmd() tea.Cmd {
	m.phase = phaseFinishing
	id := m.start.SessionID
	return func() tea.Msg {
		sum, err := m.engine.GetSummary(m.ctx, id, m.owner)
		return summaryMsg{sum: sum, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Summary returns the final summary once the interview has ended.
func (m *Model) Summary() *interview.Summary {
	return m.summary
}
