package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
)

const maxAttempts = 3

// errInputClosed ends a game when stdin runs out.
var errInputClosed = errors.New("input closed")

// NewPlayCmd runs a quiz in the terminal.
func NewPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		difficulty string
		categoryID int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			history, closeHistory, err := openHistory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeHistory()

			gateway := buildGateway(cfg, *opts, newRedisClient(cfg))
			session := app.NewController(uuid.NewString(), gateway, controllerOptions(cfg, history)...)
			return playSession(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout(), difficulty, categoryID)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard (prompted when empty)")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category id (prompted when zero)")
	return cmd
}

type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func (t terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", errInputClosed
	}
	return strings.TrimSpace(line), nil
}

// Notify prints the message and waits for Enter.
func (t terminal) Notify(_ context.Context, message string) error {
	fmt.Fprintf(t.out, "\n%s\nPress Enter to continue.", message)
	_, err := t.readLine()
	fmt.Fprintln(t.out)
	return err
}

// playSession walks one Controller from selection to results, offering
// another round after each completed quiz. Presets apply to the first round.
func playSession(ctx context.Context, session *app.Controller, in io.Reader, out io.Writer, difficulty string, categoryID int) error {
	term := terminal{in: bufio.NewReader(in), out: out}

	session.LoadCategories(ctx)
	for {
		if err := playRound(ctx, session, term, difficulty, categoryID); err != nil {
			return err
		}
		again, err := askPlayAgain(term)
		if err != nil || !again {
			return nil
		}
		session.Reset()
		difficulty, categoryID = "", 0
	}
}

func playRound(ctx context.Context, session *app.Controller, term terminal, difficulty string, categoryID int) error {
	out := term.out
	if err := chooseDifficulty(session, term, difficulty); err != nil {
		return err
	}
	if categoryID == 0 {
		id, err := chooseCategory(session.View().Categories, term)
		if err != nil {
			return err
		}
		categoryID = id
	}

	fmt.Fprintln(out, "Loading questions...")
	if err := session.StartQuiz(ctx, categoryID, term); err != nil {
		return err
	}

	for {
		view := session.View()
		if view.Screen != domain.ScreenActive {
			break
		}
		answer, err := askQuestion(view, term)
		if err != nil {
			return err
		}
		result, err := session.SubmitAnswer(answer)
		if err != nil {
			return err
		}
		if result.Correct {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Wrong. Correct answer was %s\n", result.CorrectAnswer)
		}
		// the feedback stays in the scrollback, no need to wait
		session.AdvanceNow()
	}

	printResults(session.View(), out)
	return nil
}

// askPlayAgain treats closed input as no.
func askPlayAgain(term terminal) (bool, error) {
	fmt.Fprint(term.out, "\nPlay again? (y/N): ")
	line, err := term.readLine()
	if err != nil {
		fmt.Fprintln(term.out)
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func chooseDifficulty(session *app.Controller, term terminal, preset string) error {
	if preset != "" {
		d, err := domain.ParseDifficulty(strings.ToLower(preset))
		if err != nil {
			return err
		}
		return session.SelectDifficulty(d)
	}
	names := make([]string, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		names[i] = string(d)
	}
	choices := strings.Join(names, ", ")
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(term.out, "Select difficulty (%s): ", choices)
		line, err := term.readLine()
		if err != nil {
			return err
		}
		if d, err := domain.ParseDifficulty(strings.ToLower(line)); err == nil {
			return session.SelectDifficulty(d)
		}
		fmt.Fprintf(term.out, "Please enter one of: %s.\n", choices)
	}
	return domain.ErrDifficultyNotSelected
}

func chooseCategory(categories []domain.Category, term terminal) (int, error) {
	if len(categories) == 0 {
		return 0, errors.New("no categories available, pass --category")
	}
	fmt.Fprintln(term.out, "\nQuiz Categories")
	for _, cat := range categories {
		fmt.Fprintf(term.out, "  %3d  %s\n", cat.ID, cat.Name)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprint(term.out, "Category id: ")
		line, err := term.readLine()
		if err != nil {
			return 0, err
		}
		if id, err := strconv.Atoi(line); err == nil {
			for _, cat := range categories {
				if cat.ID == id {
					return id, nil
				}
			}
		}
		fmt.Fprintln(term.out, "Unknown category.")
	}
	return 0, errors.New("no category selected")
}

func askQuestion(view domain.View, term terminal) (string, error) {
	answers := view.Question.AllAnswers
	fmt.Fprintf(term.out, "\n%s (%s)  Question %d of %d  Score: %d\n\n%s\n\n",
		view.CategoryName, view.RequestedDifficulty, view.QuestionNumber, view.TotalQuestions, view.Score, view.Question.Text)
	for i, a := range answers {
		fmt.Fprintf(term.out, "%c. %s\n", 'A'+i, a)
	}

	maxLetter := byte('A' + len(answers) - 1)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprint(term.out, "> ")
		line, err := term.readLine()
		if err != nil {
			return "", err
		}
		line = strings.ToUpper(line)
		if len(line) == 1 && line[0] >= 'A' && line[0] <= maxLetter {
			return answers[line[0]-'A'], nil
		}
		fmt.Fprintf(term.out, "Please enter a letter A-%c.\n", maxLetter)
	}
	return "", errors.New("too many invalid answers")
}

func printResults(view domain.View, out io.Writer) {
	fmt.Fprintln(out, "\nQuiz Completed!")
	fmt.Fprintf(out, "You scored %d out of %d correct answers!\n", view.Score, view.TotalQuestions)
	fmt.Fprintf(out, "Category: %s\n", view.CategoryName)
	if view.ActualDifficulty != "" && view.ActualDifficulty != view.RequestedDifficulty {
		fmt.Fprintf(out, "Difficulty: %s (questions fetched as %s)\n", view.RequestedDifficulty, view.ActualDifficulty)
		return
	}
	fmt.Fprintf(out, "Difficulty: %s\n", view.RequestedDifficulty)
}
