package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded interview and LLM events",
}

var eventsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recent LLM request events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		return withEventRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			printLLMEvents(cmd.OutOrStdout(), events, purpose)
			return nil
		})
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		return withEventRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			printLLMEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEventRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			rows, err := repo.LLMUsage(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			printUsage(cmd.OutOrStdout(), rows)
			return nil
		})
	},
}

var eventsSessionsCmd = &cobra.Command{
	Use:   "sessions [session-id]",
	Short: "List interview lifecycle events, optionally for one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		var sessionID string
		if len(args) == 1 {
			sessionID = args[0]
		}
		return withEventRepo(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryInterviewEvents(ctx, sessionID, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			printInterviewEvents(cmd.OutOrStdout(), events)
			return nil
		})
	},
}

func init() {
	eventsLLMCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsLLMCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (interview-questions, answer-score, followup)")
	eventsSessionsCmd.Flags().IntP("limit", "n", 50, "Number of events to show")

	eventsCmd.AddCommand(eventsLLMCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
	eventsCmd.AddCommand(eventsSessionsCmd)
}

func withEventRepo(cmd *cobra.Command, fn func(context.Context, store.EventRepo) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cmd.Context(), st.EventRepo())
}

func printLLMEvents(w io.Writer, events []store.LLMRequestEventRecord, purpose string) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-19s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 105))

	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-19s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMRequestEventRecord) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, part.title)
		fmt.Fprintln(w, sep)
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

// printUsage prints one row per model and purpose, then the estimated cost
// per model from the pricing table.
func printUsage(w io.Writer, rows []store.UsageRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	rule := strings.Repeat("─", 93)
	fmt.Fprintln(w, "Usage")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-28s  %-19s  %6s  %6s  %10s  %10s\n",
		"Model", "Purpose", "Calls", "Failed", "Input", "Output")
	fmt.Fprintln(w, rule)

	type modelTotal struct {
		calls, in, out int
	}
	var (
		order  []string
		totals = make(map[string]*modelTotal)
	)
	for _, r := range rows {
		fmt.Fprintf(w, "%-28s  %-19s  %6d  %6d  %10d  %10d\n",
			truncate(r.Model, 28), r.Purpose, r.Requests, r.Failures, r.InputTokens, r.OutputTokens)
		t, ok := totals[r.Model]
		if !ok {
			t = &modelTotal{}
			totals[r.Model] = t
			order = append(order, r.Model)
		}
		t.calls += r.Requests
		t.in += r.InputTokens
		t.out += r.OutputTokens
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, rule)

	var (
		totalCost float64
		unknown   []string
	)
	for _, model := range order {
		t := totals[model]
		cost := llm.LookupCost(model)
		if cost == nil {
			unknown = append(unknown, model)
			fmt.Fprintf(w, "%-28s  %6d  %10d  %10d  %10s\n", truncate(model, 28), t.calls, t.in, t.out, "?")
			continue
		}
		c := cost.Cost(t.in, t.out)
		totalCost += c
		fmt.Fprintf(w, "%-28s  %6d  %10d  %10d  %10s\n", truncate(model, 28), t.calls, t.in, t.out, formatCost(c))
	}

	fmt.Fprintln(w, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-28s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func printInterviewEvents(w io.Writer, events []store.InterviewEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No interview events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-36s  %-9s  %-8s  %-7s  %s\n",
		"ID", "Timestamp", "Session", "Action", "Question", "Overall", "Progress")
	fmt.Fprintln(w, strings.Repeat("─", 104))

	for _, e := range events {
		question, overall := "-", "-"
		if e.Action == "answer" {
			question = fmt.Sprintf("%d", e.QuestionIndex)
			overall = fmt.Sprintf("%.1f", e.Overall)
			if e.Degraded {
				overall += "*"
			}
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-36s  %-9s  %-8s  %-7s  %d/%d\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.SessionID, 36),
			e.Action,
			question,
			overall,
			e.Answered,
			e.Total,
		)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
