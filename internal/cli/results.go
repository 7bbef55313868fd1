package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quizzer/internal/domain"
)

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse your private result records",
	}
	cmd.AddCommand(newResultsListCmd())
	cmd.AddCommand(newResultsSaveCmd())
	return cmd
}

func newResultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your saved results",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := requireLogin(e); err != nil {
				return err
			}
			records, err := e.client.ListResults(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QUIZ\tSCORE\tTAKEN")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%d/%d\t%s\n",
					r.QuizTitle, r.Score, r.Total, r.TakenAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newResultsSaveCmd() *cobra.Command {
	var quizTitle string
	var score, total int

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a completed attempt in your private results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 || score < 0 || score > total {
				return fmt.Errorf("--score and --total must describe a valid result")
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := requireLogin(e); err != nil {
				return err
			}
			saved, err := e.client.SaveResult(cmd.Context(), domain.ResultRecord{
				QuizTitle: quizTitle,
				Score:     score,
				Total:     total,
				TakenAt:   time.Now(),
			})
			if err != nil {
				return err
			}
			cmd.Printf("saved result %s: %d/%d\n", saved.ID, saved.Score, saved.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&quizTitle, "quiz-title", "", "title of the quiz taken")
	cmd.Flags().IntVar(&score, "score", 0, "questions answered correctly")
	cmd.Flags().IntVar(&total, "total", 0, "questions in the attempt")
	return cmd
}
