package interview

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Guard violations are wrapped in a
// *GuardError carrying the session context.
var (
	ErrNotFound             = errors.New("interview session not found")
	ErrForbidden            = errors.New("access denied")
	ErrAlreadyCompleted     = errors.New("interview already completed")
	ErrTimeLimitExceeded    = errors.New("interview time limit exceeded")
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	ErrNoAnswersYet         = errors.New("no answers submitted yet")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrContentProvider      = errors.New("content provider failure")
	ErrCollision            = errors.New("session id collision")
)

// GuardError reports a state machine guard violation.
type GuardError struct {
	Kind      error
	SessionID string
	Cursor    int
	Total     int
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%v (session %s, cursor %d/%d)", e.Kind, e.SessionID, e.Cursor, e.Total)
}

func (e *GuardError) Unwrap() error { return e.Kind }

func guardErr(kind error, rec *Record) error {
	return &GuardError{
		Kind:      kind,
		SessionID: rec.ID,
		Cursor:    rec.Cursor,
		Total:     len(rec.Questions),
	}
}
