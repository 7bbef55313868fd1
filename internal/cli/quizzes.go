package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quizzer/internal/domain"
)

func newQuizzesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizzes",
		Short: "Manage your quizzes",
	}
	cmd.AddCommand(newQuizzesListCmd())
	cmd.AddCommand(newQuizzesPublicCmd())
	cmd.AddCommand(newQuizzesCreateCmd())
	cmd.AddCommand(newQuizzesUpdateCmd())
	cmd.AddCommand(newQuizzesDeleteCmd())
	return cmd
}

func newQuizzesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your quizzes with question counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			quizzes, err := e.client.ListQuizzes(cmd.Context())
			if err != nil {
				return err
			}
			printQuizzes(cmd, quizzes)
			return nil
		},
	}
}

func newQuizzesPublicCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "public",
		Short: "Browse public quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			result, err := e.client.PublicQuizzes(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			printQuizzes(cmd, result.Quizzes)
			cmd.Printf("page %d of %d\n", result.Page, result.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	return cmd
}

func newQuizzesCreateCmd() *cobra.Command {
	var title, description string
	var public bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			created, err := e.client.CreateQuiz(cmd.Context(), domain.Quiz{
				Title:       title,
				Description: description,
				Public:      public,
			})
			if err != nil {
				return err
			}
			cmd.Printf("created quiz %d: %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "quiz title")
	cmd.Flags().StringVar(&description, "description", "", "quiz description")
	cmd.Flags().BoolVar(&public, "public", false, "list the quiz publicly")
	return cmd
}

func newQuizzesUpdateCmd() *cobra.Command {
	var title, description string
	var public bool

	cmd := &cobra.Command{
		Use:   "update <quiz-id>",
		Short: "Update a quiz's title, description or visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			updated, err := e.client.UpdateQuiz(cmd.Context(), domain.Quiz{
				ID:          id,
				Title:       title,
				Description: description,
				Public:      public,
			})
			if err != nil {
				return err
			}
			cmd.Printf("updated quiz %d: %s\n", updated.ID, updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "quiz title")
	cmd.Flags().StringVar(&description, "description", "", "quiz description")
	cmd.Flags().BoolVar(&public, "public", false, "list the quiz publicly")
	return cmd
}

func newQuizzesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <quiz-id>",
		Short: "Delete a quiz and all its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := e.client.DeleteQuiz(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("deleted quiz %d\n", id)
			return nil
		},
	}
}

func printQuizzes(cmd *cobra.Command, quizzes []domain.Quiz) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tPUBLIC\tDESCRIPTION")
	for _, q := range quizzes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%t\t%s\n", q.ID, q.Title, q.QuestionCount, q.Public, q.Description)
	}
	_ = w.Flush()
}
