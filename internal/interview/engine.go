package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/clock"
)

// Request bounds and defaults.
const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 10

	MinTimeLimit     = 5 * time.Minute
	MaxTimeLimit     = 60 * time.Minute
	DefaultTimeLimit = 15 * time.Minute

	// DefaultProviderTimeout bounds every content provider call.
	DefaultProviderTimeout = 30 * time.Second
)

// Engine is the public façade over the store, the state machine and the
// content provider. It holds no session state of its own.
type Engine struct {
	store   *Store
	content ContentProvider
	clock   clock.Clock
	log     *zap.Logger
	events  EventRecorder
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for expiry checks.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithEventRecorder attaches a lifecycle event sink.
func WithEventRecorder(r EventRecorder) Option {
	return func(e *Engine) { e.events = r }
}

// WithProviderTimeout bounds each content provider call.
func WithProviderTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates an Engine over store and content.
func NewEngine(store *Store, content ContentProvider, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		content: content,
		clock:   clock.System{},
		log:     zap.NewNop(),
		timeout: DefaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithContent returns a copy of the engine bound to a different content
// provider. The copy shares the store.
func (e *Engine) WithContent(cp ContentProvider) *Engine {
	c := *e
	c.content = cp
	return &c
}

// StartRequest describes a new session.
type StartRequest struct {
	Categories    []Category
	Difficulty    Difficulty
	QuestionCount int
	TimeLimit     time.Duration
}

// QuestionView is one question as presented to the candidate.
type QuestionView struct {
	Index int      `json:"question_id"`
	Text  string   `json:"question_text"`
	Kind  Category `json:"question_type"`
}

// StartResult is returned by StartSession.
type StartResult struct {
	SessionID string
	Questions []QuestionView
	TimeLimit time.Duration
	CreatedAt time.Time
}

func (r *StartRequest) normalize() error {
	if r.QuestionCount == 0 {
		r.QuestionCount = DefaultQuestions
	}
	if r.TimeLimit == 0 {
		r.TimeLimit = DefaultTimeLimit
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	if r.QuestionCount < MinQuestions || r.QuestionCount > MaxQuestions {
		return fmt.Errorf("%w: question count %d outside [%d, %d]", ErrInvalidRequest, r.QuestionCount, MinQuestions, MaxQuestions)
	}
	if r.TimeLimit < MinTimeLimit || r.TimeLimit > MaxTimeLimit {
		return fmt.Errorf("%w: time limit %s outside [%s, %s]", ErrInvalidRequest, r.TimeLimit, MinTimeLimit, MaxTimeLimit)
	}
	if len(r.Categories) == 0 {
		return fmt.Errorf("%w: at least one question category is required", ErrInvalidRequest)
	}

	seen := make(map[Category]bool, len(r.Categories))
	var uniq []Category
	for _, c := range r.Categories {
		if !seen[c] {
			seen[c] = true
			uniq = append(uniq, c)
		}
	}
	r.Categories = uniq
	return nil
}

// StartSession generates questions and creates an in-progress session.
// Nothing is stored if question generation fails.
func (e *Engine) StartSession(ctx context.Context, owner string, req StartRequest) (*StartResult, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, e.timeout)
	generated, err := e.content.GenerateQuestions(pctx, req.Categories, req.Difficulty, req.QuestionCount)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.log.Error("question generation failed", zap.String("owner", owner), zap.Error(err))
		return nil, fmt.Errorf("%w: generate questions: %v", ErrContentProvider, err)
	}

	questions := make([]string, 0, req.QuestionCount)
	for _, q := range generated {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
		if len(questions) == req.QuestionCount {
			break
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions generated", ErrContentProvider)
	}

	kinds := make([]Category, len(questions))
	for i := range questions {
		kinds[i] = req.Categories[i%len(req.Categories)]
	}

	rec := &Record{
		OwnerID:    owner,
		Questions:  questions,
		Kinds:      kinds,
		Difficulty: req.Difficulty,
		CreatedAt:  e.clock.Now(),
		TimeLimit:  req.TimeLimit,
	}
	id, err := e.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	e.log.Debug("interview started",
		zap.String("session_id", id),
		zap.String("owner", owner),
		zap.Int("questions", len(questions)),
		zap.Duration("time_limit", req.TimeLimit),
	)
	e.record(ctx, Event{SessionID: id, OwnerID: owner, Action: ActionStart, Total: len(questions)})

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{Index: i, Text: q, Kind: kinds[i]}
	}
	return &StartResult{
		SessionID: id,
		Questions: views,
		TimeLimit: req.TimeLimit,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// SubmitRequest is a single answer submission.
type SubmitRequest struct {
	SessionID     string
	OwnerID       string
	QuestionIndex int
	Transcript    string
	AudioDuration *float64
}

// SubmitResult is returned by SubmitAnswer.
type SubmitResult struct {
	QuestionIndex     int
	Score             Score
	NextQuestionIndex *int
	Followup          *string
	// Degraded is true when Score is the neutral substitute.
	Degraded  bool
	Completed bool
}

// SubmitAnswer scores the answer to the current question and advances the
// session. Scoring failures degrade to NeutralScore; follow-up failures are
// logged and omitted.
func (e *Engine) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	var (
		question string
		score    Score
		degraded bool
		timedOut bool
	)

	rec, err := e.store.Update(ctx, req.SessionID, func(rec *Record) (bool, error) {
		commit, err := checkSubmit(rec, req.OwnerID, req.QuestionIndex, e.clock.Now())
		if err != nil {
			timedOut = commit
			return commit, err
		}

		question = rec.Questions[rec.Cursor]
		score, degraded, err = e.score(ctx, rec.ID, rec.Cursor, question, req.Transcript)
		if err != nil {
			return false, err
		}

		applyAnswer(rec, Answer{Transcript: req.Transcript, AudioDuration: req.AudioDuration}, score)
		return true, nil
	})
	if err != nil {
		if rec == nil {
			return nil, fmt.Errorf("session %s: %w", req.SessionID, err)
		}
		if timedOut {
			e.log.Info("interview time limit exceeded",
				zap.String("session_id", req.SessionID),
				zap.Int("answered", rec.Cursor),
				zap.Int("total", rec.Total()),
			)
			e.record(ctx, Event{SessionID: rec.ID, OwnerID: rec.OwnerID, Action: ActionTimeout, Answered: rec.Cursor, Total: rec.Total()})
		}
		return nil, err
	}

	ev := Event{
		SessionID:     rec.ID,
		OwnerID:       rec.OwnerID,
		Action:        ActionAnswer,
		QuestionIndex: req.QuestionIndex,
		Overall:       score.Overall,
		Degraded:      degraded,
		Answered:      rec.Cursor,
		Total:         rec.Total(),
	}
	if req.AudioDuration != nil {
		ev.AudioDuration = *req.AudioDuration
	}
	e.record(ctx, ev)

	res := &SubmitResult{
		QuestionIndex:     req.QuestionIndex,
		Score:             score,
		NextQuestionIndex: nextIndex(rec),
		Degraded:          degraded,
		Completed:         rec.Completed,
	}

	if rec.Completed {
		e.log.Debug("interview completed", zap.String("session_id", rec.ID))
		e.record(ctx, Event{SessionID: rec.ID, OwnerID: rec.OwnerID, Action: ActionComplete, Answered: rec.Cursor, Total: rec.Total()})
		return res, nil
	}

	res.Followup = e.followup(ctx, rec.ID, req.QuestionIndex, question, req.Transcript)
	return res, nil
}

// score asks the provider for a score. Only cancellation of the caller's
// context is returned as an error; every provider failure degrades.
func (e *Engine) score(ctx context.Context, sessionID string, index int, question, transcript string) (Score, bool, error) {
	pctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	s, err := e.content.ScoreAnswer(pctx, question, transcript)
	if ctx.Err() != nil {
		return Score{}, false, ctx.Err()
	}
	if err != nil || s == nil {
		fields := []zap.Field{zap.String("session_id", sessionID), zap.Int("question_index", index)}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		e.log.Warn("answer scoring unavailable, using neutral score", fields...)
		return NeutralScore(), true, nil
	}
	return s.Clamp(), false, nil
}

func (e *Engine) followup(ctx context.Context, sessionID string, index int, question, transcript string) *string {
	pctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	f, err := e.content.GenerateFollowup(pctx, question, transcript)
	if err != nil {
		e.log.Warn("follow-up generation failed",
			zap.String("session_id", sessionID),
			zap.Int("question_index", index),
			zap.Error(err),
		)
		return nil
	}
	text := strings.TrimSpace(f.Text)
	if !f.OK || text == "" {
		return nil
	}
	return &text
}

// GetSummary aggregates the scores submitted so far.
func (e *Engine) GetSummary(ctx context.Context, sessionID, owner string) (*Summary, error) {
	rec, err := e.owned(ctx, sessionID, owner)
	if err != nil {
		return nil, err
	}
	return BuildSummary(rec)
}

// ListActive lists every session owned by owner, finished or not.
func (e *Engine) ListActive(ctx context.Context, owner string) []Listing {
	return e.store.ListByOwner(ctx, owner)
}

// Session returns a copy of the session record for its owner.
func (e *Engine) Session(ctx context.Context, sessionID, owner string) (*Record, error) {
	return e.owned(ctx, sessionID, owner)
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// DeleteSession removes a session owned by owner.
func (e *Engine) DeleteSession(ctx context.Context, sessionID, owner string) error {
	rec, err := e.owned(ctx, sessionID, owner)
	if err != nil {
		return err
	}
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	e.record(ctx, Event{SessionID: rec.ID, OwnerID: owner, Action: ActionDelete, Answered: rec.Cursor, Total: rec.Total()})
	return nil
}

func (e *Engine) owned(ctx context.Context, sessionID, owner string) (*Record, error) {
	rec, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := checkOwner(rec, owner); err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *Engine) record(ctx context.Context, ev Event) {
	if e.events == nil {
		return
	}
	if err := e.events.RecordInterviewEvent(context.WithoutCancel(ctx), ev); err != nil {
		e.log.Warn("failed to record interview event",
			zap.String("session_id", ev.SessionID),
			zap.String("action", string(ev.Action)),
			zap.Error(err),
		)
	}
}
