package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/interview"
)

// Run starts the program and blocks until the user exits. It returns the
// summary when at least one answer was scored.
func Run(ctx context.Context, engine *interview.Engine, owner string, req interview.StartRequest) (*interview.Summary, error) {
	m := NewModel(ctx, engine, owner, req)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("run terminal ui: %w", err)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.Summary(), nil
}
