package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mockinterview/internal/interview"
)

var interviewEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "owner_id", "action",
	"question_index", "overall", "degraded", "audio_duration", "answered", "total",
}

func (r *eventRepo) AppendInterviewEvent(ctx context.Context, data InterviewEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(interviewEventsTable).
		Columns(interviewEventColumns[1:]...).
		Values(seq, r.timestamp(), data.SessionID, data.OwnerID, data.Action,
			data.QuestionIndex, data.Overall, data.Degraded, data.AudioDuration,
			data.Answered, data.Total).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save interview event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryInterviewEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]InterviewEventRecord, error) {
	var preds []*entsql.Predicate
	if sessionID != "" {
		preds = append(preds, entsql.EQ("session_id", sessionID))
	}
	sel := applyOpts(builder().Select(interviewEventColumns...).From(entsql.Table(interviewEventsTable)), opts, preds...)
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interview events: %w", err)
	}
	defer rows.Close()

	var out []InterviewEventRecord
	for rows.Next() {
		var rec InterviewEventRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.OwnerID, &rec.Action,
			&rec.QuestionIndex, &rec.Overall, &rec.Degraded, &rec.AudioDuration,
			&rec.Answered, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan interview event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RecordInterviewEvent adapts the engine's lifecycle events to the log.
func (r *eventRepo) RecordInterviewEvent(ctx context.Context, ev interview.Event) error {
	return r.AppendInterviewEvent(ctx, InterviewEventData{
		SessionID:     ev.SessionID,
		OwnerID:       ev.OwnerID,
		Action:        string(ev.Action),
		QuestionIndex: ev.QuestionIndex,
		Overall:       ev.Overall,
		Degraded:      ev.Degraded,
		AudioDuration: ev.AudioDuration,
		Answered:      ev.Answered,
		Total:         ev.Total,
	})
}

// InterviewRecorder returns the repo as an interview.EventRecorder.
func (s *Store) InterviewRecorder() interview.EventRecorder {
	return &eventRepo{db: s.db, seq: s.seq}
}
