package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockinterview/internal/interview"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode stays "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"llm_request_events", "interview_events", "global_sequence"} {
		var n int
		err := s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, name)
	}
}

func TestReopenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendInterviewEvent(context.Background(), InterviewEventData{SessionID: "s1", Action: "start"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.EventRepo().QueryInterviewEvents(context.Background(), "s1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// The sequence survives the reopen.
	require.NoError(t, s.EventRepo().AppendInterviewEvent(context.Background(), InterviewEventData{SessionID: "s1", Action: "answer"}))
	events, err = s.EventRepo().QueryInterviewEvents(context.Background(), "s1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.seq.Next(ctx)
			assert.NoError(t, err)
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[i], "missing %d", i)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "interview-questions",
		InputTokens: 120, OutputTokens: 80, LatencyMs: 900, Success: true,
		RequestBody: "[user]\nGenerate 3 questions", ResponseBody: `{"questions":["a","b","c"]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "answer-score",
		InputTokens: 60, OutputTokens: 20, Success: false, ErrorMessage: "rate limited",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "answer-score",
		InputTokens: 70, OutputTokens: 30, Success: true,
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "answer-score", events[0].Purpose, "newest first")
	assert.Equal(t, "interview-questions", events[2].Purpose)
	assert.False(t, events[1].Success)
	assert.Equal(t, "rate limited", events[1].ErrorMessage)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Before: events[0].Sequence})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, events[1].ID, limited[0].ID)

	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"questions":["a","b","c"]}`, got.ResponseBody)
	assert.Equal(t, int64(900), got.LatencyMs)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := repo.LLMUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, UsageRow{Model: "claude-haiku-4-5-20251001", Purpose: "answer-score", Requests: 2, Failures: 1, InputTokens: 130, OutputTokens: 50}, usage[0])
	assert.Equal(t, 1, usage[1].Requests)
}

func TestInterviewEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rec := s.InterviewRecorder()
	require.NoError(t, rec.RecordInterviewEvent(ctx, interview.Event{SessionID: "s1", OwnerID: "u1", Action: interview.ActionStart, Total: 2}))
	require.NoError(t, rec.RecordInterviewEvent(ctx, interview.Event{
		SessionID: "s1", OwnerID: "u1", Action: interview.ActionAnswer,
		QuestionIndex: 0, Overall: 7.5, AudioDuration: 31.5, Answered: 1, Total: 2,
	}))
	require.NoError(t, rec.RecordInterviewEvent(ctx, interview.Event{SessionID: "s2", OwnerID: "u2", Action: interview.ActionStart, Total: 5}))
	// LLM events share the sequence.
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "answer-score", Success: true}))
	require.NoError(t, rec.RecordInterviewEvent(ctx, interview.Event{SessionID: "s1", OwnerID: "u1", Action: interview.ActionTimeout, Degraded: true, Answered: 1, Total: 2}))

	s1, err := repo.QueryInterviewEvents(ctx, "s1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, s1, 3)
	assert.Equal(t, "timeout", s1[0].Action)
	assert.Equal(t, int64(5), s1[0].Sequence)
	assert.True(t, s1[0].Degraded)
	assert.Equal(t, "answer", s1[1].Action)
	assert.Equal(t, 7.5, s1[1].Overall)
	assert.Equal(t, 31.5, s1[1].AudioDuration)

	all, err := repo.QueryInterviewEvents(ctx, "", QueryOpts{After: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s2", all[1].SessionID)

	none, err := repo.QueryInterviewEvents(ctx, "nope", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueryTimeWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := &eventRepo{db: s.db, seq: s.seq, now: func() time.Time { return clock }}
	for i := range 3 {
		clock = clock.Add(time.Hour)
		require.NoError(t, repo.AppendInterviewEvent(ctx, InterviewEventData{SessionID: "s", QuestionIndex: i}))
	}

	got, err := repo.QueryInterviewEvents(ctx, "s", QueryOpts{
		From: time.Date(2026, 5, 1, 11, 30, 0, 0, time.UTC),
		To:   time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].QuestionIndex)
	assert.Equal(t, 1, got[1].QuestionIndex)
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "events.db")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MOCKINTERVIEW_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mockinterview", "events.db"), p)

	t.Setenv("MOCKINTERVIEW_DB", filepath.Join(dir, "custom.db"))
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.db"), p)
}
