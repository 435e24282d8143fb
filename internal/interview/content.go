package interview

import "context"

// ContentProvider produces question text, per-answer scores and follow-ups.
// Implementations live outside this package (LLM-backed, question bank).
type ContentProvider interface {
	// GenerateQuestions returns up to count questions. Fewer is allowed.
	GenerateQuestions(ctx context.Context, categories []Category, difficulty Difficulty, count int) ([]string, error)

	// ScoreAnswer evaluates a transcript. A nil score with a nil error means
	// the provider had nothing to say; the engine treats both that and an
	// error as a scoring failure.
	ScoreAnswer(ctx context.Context, question, transcript string) (*Score, error)

	// GenerateFollowup proposes a probing follow-up question, or NoFollowup.
	GenerateFollowup(ctx context.Context, lastQuestion, transcript string) (Followup, error)
}

// Followup is an optional follow-up question.
type Followup struct {
	Text string
	OK   bool
}

// NoFollowup signals that no follow-up is needed.
var NoFollowup = Followup{}

// SomeFollowup wraps text as a present follow-up.
func SomeFollowup(text string) Followup {
	return Followup{Text: text, OK: true}
}

// EventRecorder receives session lifecycle events. Recording is best effort;
// errors are logged and never fail the operation.
type EventRecorder interface {
	RecordInterviewEvent(ctx context.Context, ev Event) error
}

// EventAction names a lifecycle event.
type EventAction string

const (
	ActionStart    EventAction = "start"
	ActionAnswer   EventAction = "answer"
	ActionTimeout  EventAction = "timeout"
	ActionComplete EventAction = "complete"
	ActionDelete   EventAction = "delete"
)

// Event is a single lifecycle event emitted by the engine.
type Event struct {
	SessionID     string
	OwnerID       string
	Action        EventAction
	QuestionIndex int
	Overall       float64
	Degraded      bool
	AudioDuration float64
	Answered      int
	Total         int
}
