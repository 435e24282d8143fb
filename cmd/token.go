package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue a bearer token for the HTTP API",
	Long: `Issue an HS256 bearer token signed with MOCKINTERVIEW_JWT_SECRET.
Useful for local testing against "mockinterview serve".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		settings := cfg.AuthSettings()
		if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
			settings.TTL = ttl
		}
		issuer, err := auth.NewIssuer(settings)
		if err != nil {
			return fmt.Errorf("configure token issuer: %w", err)
		}
		email, _ := cmd.Flags().GetString("email")
		token, err := issuer.Issue(args[0], email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("email", "", "Email claim to embed")
	tokenCmd.Flags().Duration("ttl", 0, fmt.Sprintf("Token lifetime (default from MOCKINTERVIEW_JWT_TTL, %s)", 24*time.Hour))
}
