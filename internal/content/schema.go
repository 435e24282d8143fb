package content

import "github.com/abhisek/mockinterview/internal/llm"

// QuestionsSchema constrains question generation to an ordered list.
var QuestionsSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "An ordered list of interview questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"minItems":    1,
				"items":       map[string]any{"type": "string"},
				"description": "Question texts in the order they should be asked",
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

func axis(desc string) map[string]any {
	return map[string]any{
		"type":        "number",
		"minimum":     0,
		"maximum":     10,
		"description": desc,
	}
}

// ScoreSchema is the per-answer evaluation. Keys match interview.Score.
var ScoreSchema = &llm.Schema{
	Name:        "answer-score",
	Description: "Strict evaluation of a single interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"communication":       axis("Clarity and structure of the answer, 0 to 10"),
			"technical_knowledge": axis("Accuracy and depth of technical content, 0 to 10"),
			"problem_solving":     axis("Quality of reasoning and approach, 0 to 10"),
			"overall":             axis("Overall answer quality, 0 to 10"),
			"feedback": map[string]any{
				"type":        "string",
				"description": "Actionable feedback for the candidate, at most 60 words",
			},
		},
		"required":             []any{"communication", "technical_knowledge", "problem_solving", "overall", "feedback"},
		"additionalProperties": false,
	},
}

// FollowupSchema wraps a single follow-up question. "NONE" means no follow-up.
var FollowupSchema = &llm.Schema{
	Name:        "followup",
	Description: "One probing follow-up question or NONE",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"followup": map[string]any{
				"type":        "string",
				"description": "The follow-up question, or the literal NONE when no follow-up is needed",
			},
		},
		"required":             []any{"followup"},
		"additionalProperties": false,
	},
}
