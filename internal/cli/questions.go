package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quizzer/internal/domain"
)

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the questions of a quiz",
	}
	cmd.AddCommand(newQuestionsListCmd())
	cmd.AddCommand(newQuestionsAddCmd())
	cmd.AddCommand(newQuestionsUpdateCmd())
	cmd.AddCommand(newQuestionsDeleteCmd())
	cmd.AddCommand(newQuestionsRandomCmd())
	return cmd
}

func newQuestionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <quiz-id>",
		Short: "List all questions of a quiz with their answers",
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
			questions, err := e.client.ListQuestions(cmd.Context(), quizID)
			if err != nil {
				return err
			}
			printQuestions(cmd, questions)
			return nil
		},
	}
}

func newQuestionsRandomCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random <quiz-id>",
		Short: "Fetch a random subset of a quiz's questions",
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
			questions, err := e.client.RandomQuestions(cmd.Context(), quizID, count)
			if err != nil {
				return err
			}
			printQuestions(cmd, questions)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "number of questions to draw")
	return cmd
}

func newQuestionsAddCmd() *cobra.Command {
	var title, text string
	var answers []string
	var correct []int

	cmd := &cobra.Command{
		Use:   "add <quiz-id>",
		Short: "Add a question with its answer set",
		Long: `Add a question. Repeat --answer per option and mark the correct
ones by zero-based position with --correct, e.g.:

  quizzer questions add 7 --title "Capitals" --text "Capital of Italy?" \
      --answer "Rome" --answer "Milan" --correct 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quiz id %q", args[0])
			}
			if text == "" || len(answers) < 2 {
				return fmt.Errorf("--text and at least two --answer flags are required")
			}
			if len(correct) == 0 {
				return fmt.Errorf("mark at least one --correct answer")
			}

			correctSet := make(map[int]struct{}, len(correct))
			for _, idx := range correct {
				if idx < 0 || idx >= len(answers) {
					return fmt.Errorf("--correct %d is out of range", idx)
				}
				correctSet[idx] = struct{}{}
			}

			question := domain.Question{
				Title:    title,
				Text:     text,
				Multiple: len(correctSet) > 1,
			}
			for i, answer := range answers {
				_, ok := correctSet[i]
				question.Answers = append(question.Answers, domain.Answer{Text: answer, Correct: ok})
			}

			e, err := buildEnv()
			if err != nil {
				return err
			}
			created, err := e.client.CreateQuestion(cmd.Context(), quizID, question)
			if err != nil {
				return err
			}
			cmd.Printf("created question %d\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "question title")
	cmd.Flags().StringVar(&text, "text", "", "question text")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "answer option (repeatable)")
	cmd.Flags().IntSliceVar(&correct, "correct", nil, "zero-based index of a correct answer (repeatable)")
	return cmd
}

func newQuestionsUpdateCmd() *cobra.Command {
	var title, text string

	cmd := &cobra.Command{
		Use:   "update <question-id>",
		Short: "Change a question's title or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			if title == "" && text == "" {
				return fmt.Errorf("nothing to update, pass --title or --text")
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			updated, err := e.client.UpdateQuestion(cmd.Context(), domain.Question{
				ID:    id,
				Title: title,
				Text:  text,
			})
			if err != nil {
				return err
			}
			cmd.Printf("updated question %d\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "question title")
	cmd.Flags().StringVar(&text, "text", "", "question text")
	return cmd
}

func newQuestionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := e.client.DeleteQuestion(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("deleted question %d\n", id)
			return nil
		},
	}
}

func printQuestions(cmd *cobra.Command, questions []domain.Question) {
	for _, q := range questions {
		cmd.Printf("[%d] %s\n", q.ID, q.Text)
		for _, a := range q.Answers {
			marker := " "
			if a.Correct {
				marker = "*"
			}
			cmd.Printf("  %s (%d) %s\n", marker, a.ID, a.Text)
		}
		cmd.Println()
	}
}
