package store

import (
	"context"
	"database/sql"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts filters and pages event queries. Zero values disable a filter.
type QueryOpts struct {
	Limit  int
	After  int64 // sequence > After
	Before int64 // sequence < Before
	From   time.Time
	To     time.Time
}

// LLMRequestEventData is one LLM API call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// InterviewEventData is one interview lifecycle transition.
type InterviewEventData struct {
	SessionID     string
	OwnerID       string
	Action        string
	QuestionIndex int
	Overall       float64
	Degraded      bool
	AudioDuration float64
	Answered      int
	Total         int
}

// InterviewEventRecord is a stored interview event.
type InterviewEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	InterviewEventData
}

// UsageRow aggregates LLM usage for one model and purpose.
type UsageRow struct {
	Model        string
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns nil, nil when no event has the id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsage(ctx context.Context) ([]UsageRow, error)

	AppendInterviewEvent(ctx context.Context, data InterviewEventData) error
	// QueryInterviewEvents returns events newest first; an empty sessionID
	// matches every session.
	QueryInterviewEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]InterviewEventRecord, error)
}

// eventRepo implements EventRepo with ent's SQL builders over database/sql.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// applyOpts narrows sel by opts and orders it newest first.
func applyOpts(sel *entsql.Selector, opts QueryOpts, extra ...*entsql.Predicate) *entsql.Selector {
	preds := extra
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}
