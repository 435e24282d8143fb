package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/config"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/logging"
	"github.com/abhisek/mockinterview/internal/tui"
)

// practiceOwner owns every locally run session.
const practiceOwner = "local"

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a mock interview in the terminal",
	Long: `Run a timed mock interview in the terminal. Questions come from the
configured LLM provider, or from the built-in question bank with --bank.`,
	RunE: runPractice,
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringSliceP("type", "t", []string{"Technical", "Behavioral"}, "Question categories: Technical, Behavioral, System Design, Coding")
	f.StringP("difficulty", "d", "Medium", "Difficulty: Easy, Medium, Hard, Mixed")
	f.IntP("count", "n", interview.DefaultQuestions, "Number of questions")
	f.Int("minutes", int(interview.DefaultTimeLimit/time.Minute), "Time limit in minutes")
	f.Bool("bank", false, "Use the built-in question bank instead of an LLM")
}

func runPractice(cmd *cobra.Command, args []string) error {
	req, err := practiceRequest(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if useBank, _ := cmd.Flags().GetBool("bank"); useBank {
		cfg.Interview.Content = config.ContentBank
	}

	// The terminal UI owns the screen, so logs go only to the file when set.
	log, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Quiet:      true,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	cs, err := buildContent(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		return fmt.Errorf("%w (use --bank to practice offline)", err)
	}

	engine := interview.NewEngine(interview.NewStore(), cs.provider,
		interview.WithLogger(log),
		interview.WithEventRecorder(st.InterviewRecorder()),
		interview.WithProviderTimeout(cfg.Interview.ProviderTimeout),
	)

	sum, err := tui.Run(ctx, engine, practiceOwner, req)
	if err != nil {
		return err
	}
	if sum != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Result:", tui.Decision(sum))
	}
	log.Debug("practice finished", zap.Bool("summarized", sum != nil))
	return nil
}

func practiceRequest(cmd *cobra.Command) (interview.StartRequest, error) {
	types, _ := cmd.Flags().GetStringSlice("type")
	diff, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	minutes, _ := cmd.Flags().GetInt("minutes")

	req := interview.StartRequest{
		QuestionCount: count,
		TimeLimit:     time.Duration(minutes) * time.Minute,
	}
	for _, t := range types {
		c, err := interview.ParseCategory(t)
		if err != nil {
			return req, err
		}
		req.Categories = append(req.Categories, c)
	}
	d, err := interview.ParseDifficulty(diff)
	if err != nil {
		return req, err
	}
	req.Difficulty = d
	return req, nil
}
