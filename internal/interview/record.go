package interview

import "time"

// Record is one interview attempt. Records live inside the Store; everything
// handed out of the Store is a clone.
type Record struct {
	ID         string
	OwnerID    string
	Questions  []string
	Kinds      []Category
	Difficulty Difficulty
	Answers    []Answer
	Scores     []Score
	// Cursor is the index of the next unanswered question.
	Cursor    int
	CreatedAt time.Time
	TimeLimit time.Duration
	Completed bool
}

// State is the derived state machine position of a record.
type State int

const (
	StateCreated State = iota
	StateInProgress
	StateTimedOut
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInProgress:
		return "in_progress"
	case StateTimedOut:
		return "timed_out"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Total returns the number of questions in the session.
func (r *Record) Total() int { return len(r.Questions) }

// Expired reports whether now is past the session's time limit.
func (r *Record) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > r.TimeLimit
}

// Remaining returns how much of the time limit is left, never negative.
func (r *Record) Remaining(now time.Time) time.Duration {
	left := r.TimeLimit - now.Sub(r.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// State derives the state machine position. A completed record that did not
// answer every question timed out.
func (r *Record) State() State {
	switch {
	case !r.Completed:
		return StateInProgress
	case r.Cursor >= len(r.Questions):
		return StateCompleted
	default:
		return StateTimedOut
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.Questions = append([]string(nil), r.Questions...)
	c.Kinds = append([]Category(nil), r.Kinds...)
	c.Scores = append([]Score(nil), r.Scores...)
	c.Answers = make([]Answer, len(r.Answers))
	for i, a := range r.Answers {
		c.Answers[i] = Answer{Transcript: a.Transcript}
		if a.AudioDuration != nil {
			d := *a.AudioDuration
			c.Answers[i].AudioDuration = &d
		}
	}
	return &c
}

// Listing is the lightweight view produced by ListByOwner.
type Listing struct {
	SessionID         string    `json:"interview_id"`
	CreatedAt         time.Time `json:"start_time"`
	TotalQuestions    int       `json:"total_questions"`
	AnsweredQuestions int       `json:"answered_questions"`
	Completed         bool      `json:"completed"`
}

func (r *Record) listing() Listing {
	return Listing{
		SessionID:         r.ID,
		CreatedAt:         r.CreatedAt,
		TotalQuestions:    len(r.Questions),
		AnsweredQuestions: len(r.Scores),
		Completed:         r.Completed,
	}
}
