package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizzer/internal/domain"
	"quizzer/internal/timer"
)

func newTakeCmd() *cobra.Command {
	var save, fresh bool

	cmd := &cobra.Command{
		Use:   "take <token>",
		Short: "Take the quiz behind an issued token",
		Long: `Take the quiz behind an issued token. The question draw and your
in-progress answers are cached locally, so an interrupted attempt resumes
where it left off. Inside the prompt:

  <question#> <answer#>   select an answer (toggles for multi-answer questions)
  show                    reprint questions and current selections
  view single|all         show one question at a time or the whole draw
  time                    show the remaining time
  submit                  send your answers and show the result
  quit                    leave; answers stay cached for later`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			return runTake(cmd, e, args[0], save, fresh)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the result to your private records after submission")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "discard the locally cached attempt before starting")
	return cmd
}

func runTake(cmd *cobra.Command, e *env, token string, save, fresh bool) error {
	ctx := cmd.Context()

	if fresh {
		if err := e.manager.Reset(ctx, token); err != nil {
			return err
		}
	}
	if required, err := e.client.RequiredDetails(ctx, token); err == nil && required {
		cmd.Println("Note: this token requires taker details; make sure you are logged in.")
	}

	session, err := e.manager.LoadOrFetch(ctx, token)
	if err != nil {
		return err
	}
	if session.Finalized() {
		cmd.Println("This attempt was already submitted.")
		printResults(cmd, session)
		return nil
	}

	countdown, err := timer.New(session.Meta.Duration)
	if err != nil {
		e.log.Debug("no usable duration on session", "token", token, "err", err)
		countdown = nil
	}

	printDraw(cmd, session)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		session, countdown = refreshSession(cmd, e, token, session, countdown)
		prompt := "> "
		if countdown != nil {
			prompt = countdown.Display() + " > "
		}
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || line == "show":
			printDraw(cmd, session)
		case line == "time":
			if countdown != nil {
				cmd.Println(countdown.Display())
			}
		case line == "view single" || line == "view all":
			mode := strings.TrimPrefix(line, "view ")
			if err := e.manager.SetViewMode(ctx, token, mode); err != nil {
				color.Red("%v", err)
				continue
			}
			session.ViewMode = mode
			printDraw(cmd, session)
		case line == "quit":
			cmd.Println("Answers kept; run the same command to resume.")
			return nil
		case line == "submit":
			return submitAttempt(cmd, e, token, save)
		default:
			if err := selectAnswer(cmd, e, token, session, line); err != nil {
				color.Red("%v", err)
			}
		}
	}
}

// refreshSession rereads the cached session, which a background revalidation
// may have replaced while we waited on input. A replaced draw means the
// attempt was reset server-side: the countdown restarts from the new
// duration and the fresh draw is printed.
func refreshSession(cmd *cobra.Command, e *env, token string, session domain.AttemptSession, countdown *timer.Countdown) (domain.AttemptSession, *timer.Countdown) {
	refreshed, err := e.manager.LoadOrFetch(cmd.Context(), token)
	if err != nil {
		return session, countdown
	}
	if sameQuestions(session.Questions, refreshed.Questions) {
		return refreshed, countdown
	}

	cmd.Println("The attempt was reset server-side; answers cleared, timer restarted.")
	countdown = nil
	if c, err := timer.New(refreshed.Meta.Duration); err == nil {
		countdown = c
	}
	printDraw(cmd, refreshed)
	return refreshed, countdown
}

func sameQuestions(a, b []domain.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func selectAnswer(cmd *cobra.Command, e *env, token string, session domain.AttemptSession, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("expected '<question#> <answer#>', 'show', 'time', 'submit' or 'quit'")
	}
	qIdx, err := strconv.Atoi(fields[0])
	if err != nil || qIdx < 1 || qIdx > len(session.Questions) {
		return fmt.Errorf("question number out of range")
	}
	question := session.Questions[qIdx-1]
	aIdx, err := strconv.Atoi(fields[1])
	if err != nil || aIdx < 1 || aIdx > len(question.Answers) {
		return fmt.Errorf("answer number out of range")
	}

	_, err = e.manager.RecordAnswer(cmd.Context(), token, question.ID, question.Answers[aIdx-1].ID, question.Multiple)
	if errors.Is(err, domain.ErrAttemptFinalized) {
		return fmt.Errorf("attempt already submitted, answers are locked")
	}
	return err
}

func submitAttempt(cmd *cobra.Command, e *env, token string, save bool) error {
	ctx := cmd.Context()
	session, score, err := e.manager.Submit(ctx, token)
	if err != nil {
		return err
	}

	printResults(cmd, session)
	color.New(color.Bold).Fprintf(cmd.OutOrStdout(), "Score: %d/%d\n", score, len(session.Questions))

	if save {
		record := domain.ResultRecord{
			Score:   score,
			Total:   len(session.Questions),
			TakenAt: time.Now(),
		}
		if _, err := e.client.SaveResult(ctx, record); err != nil {
			e.log.Warn("could not save result record", "err", err)
		}
	}
	return nil
}

func printDraw(cmd *cobra.Command, session domain.AttemptSession) {
	for i, q := range session.Questions {
		// In single view only the first unanswered question is shown.
		if session.ViewMode == "single" && len(session.Answers[q.ID]) > 0 {
			continue
		}

		selected := make(map[int64]struct{})
		for _, id := range session.Answers[q.ID] {
			selected[id] = struct{}{}
		}

		suffix := ""
		if q.Multiple {
			suffix = " (multiple answers)"
		}
		cmd.Printf("%d. %s%s\n", i+1, q.Text, suffix)
		for j, a := range q.Answers {
			marker := "[ ]"
			if _, ok := selected[a.ID]; ok {
				marker = "[x]"
			}
			cmd.Printf("   %s %d) %s\n", marker, j+1, a.Text)
		}

		if session.ViewMode == "single" {
			break
		}
	}
}

func printResults(cmd *cobra.Command, session domain.AttemptSession) {
	for i, q := range session.Questions {
		result, ok := session.Results[q.ID]
		if !ok {
			continue
		}
		if domain.SameIDSet(result.Selected, result.Correct) {
			color.Green("%d. %s: correct", i+1, q.Text)
		} else {
			color.Red("%d. %s: incorrect", i+1, q.Text)
		}
	}
}
