package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/opodrill/opodrill/internal/engine"
)

// PracticeCLI runs one attempt as an interactive terminal drill: show the
// next question, read an answer, submit it and show the verdict.
type PracticeCLI struct {
	*interactiveCLI
	engine    Engine
	attemptID string
	isStreak  bool
}

// NewPracticeCLI creates the drill, creating the attempt through the engine.
func NewPracticeCLI(ctx context.Context, eng Engine, req engine.CreateAttemptRequest) (*PracticeCLI, error) {
	att, err := eng.CreateAttempt(ctx, req)
	if err != nil {
		return nil, err
	}

	cli := &PracticeCLI{
		interactiveCLI: newInteractiveCLI(),
		engine:         eng,
		attemptID:      att.ID,
		isStreak:       att.Mode == "streak",
	}
	cli.printf("Starting %s practice with %d questions", att.Mode, len(att.QuestionIDs))
	if cli.isStreak {
		cli.printf(" (streak target: %d)", att.StreakTarget)
	}
	cli.printf("\n\n")
	return cli, nil
}

// Session asks and grades one question.
func (cli *PracticeCLI) Session(ctx context.Context) error {
	view, err := cli.engine.NextQuestion(ctx, cli.attemptID)
	if errors.Is(err, engine.ErrPoolExhausted) || errors.Is(err, engine.ErrAttemptFinished) {
		return cli.finish(ctx)
	}
	if err != nil {
		return fmt.Errorf("engine.NextQuestion() > %w", err)
	}

	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", view.Statement)
	for _, opt := range view.Options {
		cli.printf("  %s) %s\n", opt.Label, opt.Text)
	}
	cli.printf("Your answer: ")

	answer, err := cli.readLine()
	if err != nil {
		return err
	}
	answer = strings.ToUpper(answer)
	if answer == "" {
		cli.printf("Skipped.\n\n")
		return nil
	}

	result, err := cli.engine.SubmitAnswer(ctx, engine.SubmitAnswerRequest{
		AttemptID:      cli.attemptID,
		QuestionID:     view.QuestionID,
		SelectedOption: answer,
	})
	if errors.Is(err, engine.ErrInvalidScope) {
		cli.printf("Please answer with one of the option letters.\n\n")
		return nil
	}
	if err != nil {
		return fmt.Errorf("engine.SubmitAnswer() > %w", err)
	}

	if result.Correct {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		color.Green("Correct!")
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		color.Red("Wrong. The correct answer was %s.", result.CorrectLabel)
	}
	if cli.isStreak {
		cli.printf("Streak: %d (best %d)\n", result.StreakCurrent, result.StreakMax)
	}
	cli.printf("\n")

	if result.Finished {
		return cli.finish(ctx)
	}
	return nil
}

// finish prints the attempt summary and ends the loop.
func (cli *PracticeCLI) finish(ctx context.Context) error {
	att, _, err := cli.engine.GetAttempt(ctx, cli.attemptID)
	if err != nil {
		return fmt.Errorf("engine.GetAttempt() > %w", err)
	}

	cli.printf("Practice finished: %d correct, %d wrong.\n", att.CorrectCount, att.IncorrectCount)
	if att.Score != nil {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "Score: %.0f / 10\n", *att.Score)
	}
	if cli.isStreak {
		cli.printf("Best streak: %d of %d.\n", att.StreakMax, att.StreakTarget)
	}
	return errEnd
}
