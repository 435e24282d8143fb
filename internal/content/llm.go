package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// Config holds the generation parameters for LLM-backed content.
type Config struct {
	QuestionsMaxTokens int
	ScoreMaxTokens     int
	FollowupMaxTokens  int

	QuestionsTemperature float64
	ScoreTemperature     float64
	FollowupTemperature  float64
}

func DefaultConfig() Config {
	return Config{
		QuestionsMaxTokens:   2048,
		ScoreMaxTokens:       512,
		FollowupMaxTokens:    128,
		QuestionsTemperature: 0.7,
		ScoreTemperature:     0.1,
		FollowupTemperature:  0.2,
	}
}

// LLM implements interview.ContentProvider using a language model.
type LLM struct {
	provider llm.Provider
	config   Config
}

var _ interview.ContentProvider = (*LLM)(nil)

// NewLLM creates an LLM content provider.
func NewLLM(provider llm.Provider, cfg Config) *LLM {
	return &LLM{provider: provider, config: cfg}
}

type questionsOutput struct {
	Questions []string `json:"questions"`
}

type followupOutput struct {
	Followup string `json:"followup"`
}

func (g *LLM) GenerateQuestions(ctx context.Context, categories []interview.Category, difficulty interview.Difficulty, count int) ([]string, error) {
	if len(categories) == 0 || count < 1 {
		return nil, fmt.Errorf("need at least one category and one question")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestions)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      questionsPrompt,
		Messages:    llm.UserMessage(buildQuestionsMessage(categories, difficulty, count)),
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.QuestionsMaxTokens,
		Temperature: g.config.QuestionsTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM question generation failed: %w", err)
	}

	var out questionsOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}

	questions := make([]string, 0, count)
	for _, q := range out.Questions {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
		if len(questions) == count {
			break
		}
	}
	return questions, nil
}

func (g *LLM) ScoreAnswer(ctx context.Context, question, transcript string) (*interview.Score, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeScore)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      scorePrompt,
		Messages:    llm.UserMessage(buildAnswerMessage(question, transcript)),
		Schema:      ScoreSchema,
		MaxTokens:   g.config.ScoreMaxTokens,
		Temperature: g.config.ScoreTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM scoring failed: %w", err)
	}

	var score interview.Score
	if err := resp.Decode(&score); err != nil {
		return nil, err
	}
	score.Feedback = strings.TrimSpace(score.Feedback)
	return &score, nil
}

func (g *LLM) GenerateFollowup(ctx context.Context, lastQuestion, transcript string) (interview.Followup, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFollowup)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      followupPrompt,
		Messages:    llm.UserMessage(buildAnswerMessage(lastQuestion, transcript)),
		Schema:      FollowupSchema,
		MaxTokens:   g.config.FollowupMaxTokens,
		Temperature: g.config.FollowupTemperature,
	})
	if err != nil {
		return interview.NoFollowup, fmt.Errorf("LLM follow-up failed: %w", err)
	}

	var out followupOutput
	if err := resp.Decode(&out); err != nil {
		return interview.NoFollowup, err
	}
	if isNone(out.Followup) {
		return interview.NoFollowup, nil
	}
	return interview.SomeFollowup(strings.TrimSpace(out.Followup)), nil
}
