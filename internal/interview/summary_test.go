package interview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_Boundaries(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{10, DecisionStrongHire},
		{7.5, DecisionStrongHire},
		{7.4999, DecisionHire},
		{6.0, DecisionHire},
		{5.9999, DecisionMaybe},
		{5.0, DecisionMaybe},
		{4.9999, DecisionNoHire},
		{0, DecisionNoHire},
	}
	for _, tt := range tests {
		if got := Decide(tt.overall); got != tt.want {
			t.Errorf("Decide(%v) = %q, want %q", tt.overall, got, tt.want)
		}
	}
}

func TestAggregateScores_Empty(t *testing.T) {
	_, err := AggregateScores(nil)
	if !errors.Is(err, ErrNoAnswersYet) {
		t.Fatalf("expected ErrNoAnswersYet, got %v", err)
	}
}

func TestAggregateScores_Means(t *testing.T) {
	scores := []Score{
		{Communication: 7, TechnicalKnowledge: 8, ProblemSolving: 6, Overall: 7},
		{Communication: 9, TechnicalKnowledge: 9, ProblemSolving: 9, Overall: 9},
		{Communication: 2, TechnicalKnowledge: 4, ProblemSolving: 3, Overall: 2.5},
	}
	agg, err := AggregateScores(scores)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, agg.AvgCommunication, 1e-12)
	assert.InDelta(t, 7.0, agg.AvgTechnical, 1e-12)
	assert.InDelta(t, 6.0, agg.AvgProblemSolving, 1e-12)
	assert.InDelta(t, 6.166666666666667, agg.OverallScore, 1e-12)
	assert.Equal(t, DecisionHire, agg.Decision)
	assert.Equal(t, []string{"Solid technical knowledge"}, agg.Strengths)
	assert.Empty(t, agg.Improvements)
}

func TestAggregateScores_Buckets(t *testing.T) {
	tests := []struct {
		name         string
		score        Score
		strengths    []string
		improvements []string
	}{
		{
			name:      "all strong",
			score:     Score{Communication: 7, TechnicalKnowledge: 7.5, ProblemSolving: 10, Overall: 8},
			strengths: []string{"Strong communication skills", "Solid technical knowledge", "Good problem-solving approach"},
		},
		{
			name:         "all weak",
			score:        Score{Communication: 4.9, TechnicalKnowledge: 0, ProblemSolving: 1, Overall: 2},
			improvements: []string{"Communication clarity and articulation", "Technical depth and understanding", "Problem-solving methodology"},
		},
		{
			name:  "middle band contributes nothing",
			score: Score{Communication: 5, TechnicalKnowledge: 6.99, ProblemSolving: 6, Overall: 6},
		},
		{
			name:         "mixed",
			score:        Score{Communication: 8, TechnicalKnowledge: 3, ProblemSolving: 5.5, Overall: 5.5},
			strengths:    []string{"Strong communication skills"},
			improvements: []string{"Technical depth and understanding"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := AggregateScores([]Score{tt.score})
			require.NoError(t, err)
			if tt.strengths == nil {
				tt.strengths = []string{}
			}
			if tt.improvements == nil {
				tt.improvements = []string{}
			}
			assert.Equal(t, tt.strengths, agg.Strengths)
			assert.Equal(t, tt.improvements, agg.Improvements)
		})
	}
}

func TestAggregateScores_Narrative(t *testing.T) {
	tests := []struct {
		overall float64
		band    string
	}{
		{7.5, "excellent"},
		{6.0, "good"},
		{5.0, "satisfactory"},
		{4.0, "needs improvement"},
	}
	for _, tt := range tests {
		agg, err := AggregateScores([]Score{{Communication: 6.26, TechnicalKnowledge: 7.04, ProblemSolving: 3.96, Overall: tt.overall}})
		require.NoError(t, err)
		want := "Overall performance was " + tt.band + ". Communication skills scored 6.3/10, technical knowledge scored 7.0/10, and problem-solving scored 4.0/10."
		assert.Equal(t, want, agg.Narrative)
	}
}

func TestBuildSummary_NoAnswersCarriesContext(t *testing.T) {
	rec := &Record{ID: "s1", Questions: []string{"q1", "q2"}}
	_, err := BuildSummary(rec)

	var ge *GuardError
	require.ErrorAs(t, err, &ge)
	assert.ErrorIs(t, err, ErrNoAnswersYet)
	assert.Equal(t, "s1", ge.SessionID)
	assert.Equal(t, 2, ge.Total)
}
