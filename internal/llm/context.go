package llm

import "context"

type contextKey int

const purposeKey contextKey = iota

// Purposes used by the interview content provider.
const (
	PurposeQuestions = "interview-questions"
	PurposeScore     = "answer-score"
	PurposeFollowup  = "followup"
)

// WithPurpose labels ctx so request events record why the call was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
