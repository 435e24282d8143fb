package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

func TestGenerateQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"questions": []string{"  What is a mutex?  ", "", "Tell me about a conflict.", "Extra question"},
	}))
	g := NewLLM(mock, DefaultConfig())

	qs, err := g.GenerateQuestions(context.Background(),
		[]interview.Category{interview.CategoryTechnical, interview.CategoryBehavioral},
		interview.DifficultyMedium, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"What is a mutex?", "Tell me about a conflict."}, qs)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, QuestionsSchema, reqs[0].Schema)
	assert.Equal(t, questionsPrompt, reqs[0].System)
	user := reqs[0].Messages[0].Content
	assert.Contains(t, user, "Difficulty: Medium")
	assert.Contains(t, user, "1. Technical\n2. Behavioral")
}

func TestGenerateQuestions_MixedSlotsCycle(t *testing.T) {
	msg := buildQuestionsMessage([]interview.Category{interview.CategoryCoding}, interview.DifficultyMixed, 3)
	assert.Contains(t, msg, "Spread the questions")
	assert.Contains(t, msg, "1. Coding\n2. Coding\n3. Coding")
}

func TestGenerateQuestions_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	g := NewLLM(mock, DefaultConfig())

	_, err := g.GenerateQuestions(context.Background(), []interview.Category{interview.CategoryCoding}, interview.DifficultyEasy, 1)
	require.Error(t, err)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestGenerateQuestions_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"questions": []string{}}))
	g := NewLLM(mock, DefaultConfig())

	_, err := g.GenerateQuestions(context.Background(), []interview.Category{interview.CategoryCoding}, interview.DifficultyEasy, 1)
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestGenerateQuestions_BadInput(t *testing.T) {
	g := NewLLM(llm.NewMockProvider(), DefaultConfig())
	_, err := g.GenerateQuestions(context.Background(), nil, interview.DifficultyEasy, 1)
	require.Error(t, err)
}

func TestScoreAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"communication":       7,
		"technical_knowledge": 8,
		"problem_solving":     6,
		"overall":             7,
		"feedback":            " ok ",
	}))
	g := NewLLM(mock, DefaultConfig())

	s, err := g.ScoreAnswer(context.Background(), "Q?", "I used arrays")
	require.NoError(t, err)
	assert.Equal(t, &interview.Score{
		Communication:      7,
		TechnicalKnowledge: 8,
		ProblemSolving:     6,
		Overall:            7,
		Feedback:           "ok",
	}, s)

	req := mock.Requests()[0]
	assert.Equal(t, ScoreSchema, req.Schema)
	assert.Equal(t, "Question: Q?\n\nCandidate answer (transcript): I used arrays", req.Messages[0].Content)
}

func TestScoreAnswer_OutOfRangeRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"communication":       70,
		"technical_knowledge": 8,
		"problem_solving":     6,
		"overall":             7,
		"feedback":            "",
	}))
	g := NewLLM(mock, DefaultConfig())

	_, err := g.ScoreAnswer(context.Background(), "Q?", "A")
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestScoreAnswer_TruncatesTranscript(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"communication": 5, "technical_knowledge": 5, "problem_solving": 5, "overall": 5, "feedback": "",
	}))
	g := NewLLM(mock, DefaultConfig())

	_, err := g.ScoreAnswer(context.Background(), "Q?", strings.Repeat("é", maxTranscriptChars+100))
	require.NoError(t, err)
	content := mock.Requests()[0].Messages[0].Content
	assert.Equal(t, maxTranscriptChars, strings.Count(content, "é"))
}

func TestGenerateFollowup(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  interview.Followup
	}{
		{"question", "  Why a B-tree?  ", interview.SomeFollowup("Why a B-tree?")},
		{"none", "NONE", interview.NoFollowup},
		{"none lowercase with reason", "none - the answer was complete", interview.NoFollowup},
		{"empty", "   ", interview.NoFollowup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"followup": tt.reply}))
			g := NewLLM(mock, DefaultConfig())

			got, err := g.GenerateFollowup(context.Background(), "Q?", "A")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, FollowupSchema, mock.Requests()[0].Schema)
		})
	}
}

func TestGenerateFollowup_Error(t *testing.T) {
	g := NewLLM(llm.NewMockProvider(), DefaultConfig())
	got, err := g.GenerateFollowup(context.Background(), "Q?", "A")
	require.Error(t, err)
	assert.Equal(t, interview.NoFollowup, got)
}

// purposeProvider records the purpose label of each call.
type purposeProvider struct {
	llm.Provider
	purposes []string
}

func (p *purposeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return p.Provider.Generate(ctx, req)
}

func TestPurposeLabels(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockJSON(map[string]any{"questions": []string{"Q1"}}),
		llm.MockJSON(map[string]any{"communication": 5, "technical_knowledge": 5, "problem_solving": 5, "overall": 5, "feedback": ""}),
		llm.MockJSON(map[string]string{"followup": "NONE"}),
	)
	p := &purposeProvider{Provider: mock}
	g := NewLLM(p, DefaultConfig())
	ctx := context.Background()

	_, err := g.GenerateQuestions(ctx, []interview.Category{interview.CategoryTechnical}, interview.DifficultyHard, 1)
	require.NoError(t, err)
	_, err = g.ScoreAnswer(ctx, "Q1", "A")
	require.NoError(t, err)
	_, err = g.GenerateFollowup(ctx, "Q1", "A")
	require.NoError(t, err)

	assert.Equal(t, []string{llm.PurposeQuestions, llm.PurposeScore, llm.PurposeFollowup}, p.purposes)
}
