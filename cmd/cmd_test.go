package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockinterview/internal/auth"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("MOCKINTERVIEW_JWT_SECRET", testSecret)

	token := strings.TrimSpace(execute(t, "token", "user-42", "--email", "dev@example.com"))
	require.NotEmpty(t, token)

	v, err := auth.NewVerifier(auth.Config{Secret: []byte(testSecret), Issuer: "mockinterview", TTL: time.Hour})
	require.NoError(t, err)
	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id.UserID)
	assert.Equal(t, "dev@example.com", id.Email)
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "mockinterview (devel)\n", execute(t, "version"))
}

func newPracticeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "practice"}
	addPracticeFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestPracticeRequest(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    interview.StartRequest
		wantErr bool
	}{
		{
			name: "system design hard",
			args: []string{"-t", "system-design", "-t", "coding", "-d", "hard", "-n", "4", "--minutes", "20"},
			want: interview.StartRequest{
				Categories:    []interview.Category{interview.CategorySystemDesign, interview.CategoryCoding},
				Difficulty:    interview.DifficultyHard,
				QuestionCount: 4,
				TimeLimit:     20 * time.Minute,
			},
		},
		{name: "unknown category", args: []string{"-t", "trivia"}, wantErr: true},
		{name: "unknown difficulty", args: []string{"-t", "coding", "-d", "brutal"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := practiceRequest(newPracticeFlags(t, tt.args...))
			if tt.wantErr {
				assert.ErrorIs(t, err, interview.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf, []store.UsageRow{
		{Model: "gpt-4o-mini", Purpose: "answer-score", Requests: 3, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "gpt-4o-mini", Purpose: "followup", Requests: 1, Failures: 1},
		{Model: "home-grown", Purpose: "followup", Requests: 2, InputTokens: 10, OutputTokens: 5},
	})
	out := buf.String()

	assert.Contains(t, out, "$0.15")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: home-grown")
}

func TestPrintUsage_Empty(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", buf.String())
}

func TestPrintInterviewEvents(t *testing.T) {
	var buf bytes.Buffer
	printInterviewEvents(&buf, []store.InterviewEventRecord{
		{ID: 2, Timestamp: time.Now(), InterviewEventData: store.InterviewEventData{
			SessionID: "s-1", Action: "answer", QuestionIndex: 0, Overall: 4, Degraded: true, Answered: 1, Total: 3,
		}},
		{ID: 1, Timestamp: time.Now(), InterviewEventData: store.InterviewEventData{
			SessionID: "s-1", Action: "start", Total: 3,
		}},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "4.0*")
	assert.Contains(t, lines[2], "1/3")
	assert.Contains(t, lines[3], "start")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
