package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quizzer/internal/api"
	"quizzer/internal/timer"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage issued quiz tokens",
	}
	cmd.AddCommand(newTokensIssueCmd())
	cmd.AddCommand(newTokensListCmd())
	cmd.AddCommand(newTokensUpdateCmd())
	cmd.AddCommand(newTokensDeleteCmd())
	cmd.AddCommand(newTokensAttemptsCmd())
	cmd.AddCommand(newTokensResetCmd())
	return cmd
}

func newTokensIssueCmd() *cobra.Command {
	var questions int
	var duration, expires string
	var requiredDetails bool
	var requiredQuestions []int64

	cmd := &cobra.Command{
		Use:   "issue <quiz-id>",
		Short: "Generate a shareable token for a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			if _, err := timer.ParseDuration(duration); err != nil {
				return err
			}

			req := api.IssueTokenRequest{
				NumberOfQuestions: questions,
				Duration:          duration,
				RequiredDetails:   requiredDetails,
				RequiredQuestions: requiredQuestions,
			}
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("invalid --expires, want RFC3339: %w", err)
				}
				req.ExpirationDate = &t
			}

			e, err := buildEnv()
			if err != nil {
				return err
			}
			token, err := e.client.IssueToken(cmd.Context(), quizID, req)
			if err != nil {
				return err
			}
			cmd.Printf("issued token %s (%d questions, duration %s)\n",
				token.TokenID, token.NumberOfQuestions, token.Duration)
			return nil
		},
	}

	cmd.Flags().IntVar(&questions, "questions", 10, "number of questions to draw")
	cmd.Flags().StringVar(&duration, "duration", "00:30", "attempt duration as HH:MM")
	cmd.Flags().StringVar(&expires, "expires", "", "token expiration (RFC3339)")
	cmd.Flags().BoolVar(&requiredDetails, "required-details", false, "require taker details before the draw")
	cmd.Flags().Int64SliceVar(&requiredQuestions, "require-question", nil, "question id that must be part of the draw (repeatable)")
	return cmd
}

func newTokensListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <quiz-id>",
		Short: "List tokens issued for a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			tokens, err := e.client.ListTokens(cmd.Context(), quizID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tQUESTIONS\tDURATION\tISSUED\tEXPIRES")
			for _, t := range tokens {
				expires := "-"
				if t.ExpiresAt != nil {
					expires = t.ExpiresAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					t.TokenID, t.NumberOfQuestions, t.Duration,
					t.IssuedAt.Format(time.RFC3339), expires)
			}
			return w.Flush()
		},
	}
}

func newTokensUpdateCmd() *cobra.Command {
	var questions int
	var expires string

	cmd := &cobra.Command{
		Use:   "update <token>",
		Short: "Change a token's expiration or question count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var expiration *time.Time
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("invalid --expires, want RFC3339: %w", err)
				}
				expiration = &t
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			updated, err := e.client.UpdateToken(cmd.Context(), args[0], expiration, questions)
			if err != nil {
				return err
			}
			cmd.Printf("updated token %s\n", updated.TokenID)
			return nil
		},
	}

	cmd.Flags().IntVar(&questions, "questions", 0, "new number of questions (0 keeps current)")
	cmd.Flags().StringVar(&expires, "expires", "", "new expiration (RFC3339)")
	return cmd
}

func newTokensDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <token>",
		Short: "Revoke an issued token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := e.client.DeleteToken(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Printf("deleted token %s\n", args[0])
			return nil
		},
	}
}

func newTokensAttemptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attempts <token>",
		Short: "List per-user attempts recorded against a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			attempts, err := e.client.ListAttempts(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tSUBMITTED\tSCORE")
			for _, a := range attempts {
				fmt.Fprintf(w, "%s\t%s\t%d/%d\n",
					a.User, a.SubmittedAt.Format(time.RFC3339), a.Score, a.Total)
			}
			return w.Flush()
		},
	}
}

func newTokensResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <token> <user>",
		Short: "Delete one user's attempt so they can retake the quiz",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := e.client.DeleteAttempt(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("deleted attempt of %s on token %s\n", args[1], args[0])
			return nil
		},
	}
}
