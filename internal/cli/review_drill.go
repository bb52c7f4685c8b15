package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/review"
)

// ReviewCLI drills the questions whose review is due. After each answer the
// learner grades the recall themselves, which drives the next due date.
type ReviewCLI struct {
	*interactiveCLI
	engine    Engine
	attemptID string
}

// NewReviewCLI creates the drill over a due-mode attempt.
func NewReviewCLI(ctx context.Context, eng Engine, req engine.CreateAttemptRequest) (*ReviewCLI, error) {
	req.Mode = "due"
	att, err := eng.CreateAttempt(ctx, req)
	if err != nil {
		return nil, err
	}

	cli := &ReviewCLI{
		interactiveCLI: newInteractiveCLI(),
		engine:         eng,
		attemptID:      att.ID,
	}
	cli.printf("Reviewing %d due questions.\n\n", len(att.QuestionIDs))
	return cli, nil
}

// Session reviews one due question.
func (cli *ReviewCLI) Session(ctx context.Context) error {
	view, err := cli.engine.NextQuestion(ctx, cli.attemptID)
	if errors.Is(err, engine.ErrPoolExhausted) || errors.Is(err, engine.ErrAttemptFinished) {
		cli.printf("No more questions due for review.\n")
		return errEnd
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

	result, err := cli.engine.SubmitAnswer(ctx, engine.SubmitAnswerRequest{
		AttemptID:      cli.attemptID,
		QuestionID:     view.QuestionID,
		SelectedOption: strings.ToUpper(answer),
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

	grade, err := cli.readGrade(result.Correct)
	if err != nil {
		return err
	}
	state, err := cli.engine.GradeReview(ctx, view.QuestionID, grade)
	if err != nil {
		return fmt.Errorf("engine.GradeReview() > %w", err)
	}
	cli.printf("Next review in %d day(s).\n\n", state.IntervalDays)
	return nil
}

// readGrade asks for the self-assessed recall grade; an empty input defaults
// to good on a correct answer and again on a wrong one.
func (cli *ReviewCLI) readGrade(correct bool) (review.Grade, error) {
	for {
		cli.printf("How hard was it? (again/hard/good/easy): ")
		input, err := cli.readLine()
		if err != nil {
			return 0, err
		}
		if input == "" {
			if correct {
				return review.GradeGood, nil
			}
			return review.GradeAgain, nil
		}
		grade, err := review.ParseGrade(strings.ToLower(input))
		if err == nil {
			return grade, nil
		}
		cli.printf("Unknown grade %q.\n", input)
	}
}
