package interview

import (
	"fmt"
	"strings"
)

// Category tags the kind of question being asked.
type Category string

const (
	CategoryTechnical    Category = "Technical"
	CategoryBehavioral   Category = "Behavioral"
	CategorySystemDesign Category = "System Design"
	CategoryCoding       Category = "Coding"
)

// AllCategories lists every known category in display order.
var AllCategories = []Category{
	CategoryTechnical,
	CategoryBehavioral,
	CategorySystemDesign,
	CategoryCoding,
}

// ParseCategory matches s case-insensitively against the known categories.
// "system-design" and "system_design" are accepted for System Design.
func ParseCategory(s string) (Category, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if strings.EqualFold(norm, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown question category %q", ErrInvalidRequest, s)
}

// Difficulty is the requested difficulty of the question set.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyMixed  Difficulty = "Mixed"
)

// ParseDifficulty matches s case-insensitively against the known levels.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, s)
}

// NeutralFeedback marks a score substituted because automatic scoring failed.
const NeutralFeedback = "Unable to score answer automatically."

// Score is the per-answer evaluation on a 0-10 scale.
type Score struct {
	Communication      float64 `json:"communication"`
	TechnicalKnowledge float64 `json:"technical_knowledge"`
	ProblemSolving     float64 `json:"problem_solving"`
	Overall            float64 `json:"overall"`
	Feedback           string  `json:"feedback"`
}

// NeutralScore is substituted when the content provider cannot score an answer.
func NeutralScore() Score {
	return Score{
		Communication:      5,
		TechnicalKnowledge: 5,
		ProblemSolving:     5,
		Overall:            5,
		Feedback:           NeutralFeedback,
	}
}

// Degraded reports whether s is the neutral substitute.
func (s Score) Degraded() bool {
	return s == NeutralScore()
}

// Clamp bounds every axis to [0, 10].
func (s Score) Clamp() Score {
	s.Communication = clamp10(s.Communication)
	s.TechnicalKnowledge = clamp10(s.TechnicalKnowledge)
	s.ProblemSolving = clamp10(s.ProblemSolving)
	s.Overall = clamp10(s.Overall)
	return s
}

func clamp10(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

// Answer is one submitted transcript.
type Answer struct {
	Transcript string
	// AudioDuration is the recording length in seconds, when the answer was spoken.
	AudioDuration *float64
}
