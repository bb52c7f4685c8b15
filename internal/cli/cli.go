// Package cli implements the interactive terminal drills over the engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/statistics"
)

// errEnd ends a session loop without reporting a failure.
var errEnd = errors.New("end")

// Engine is the slice of the application facade the drills consume.
//
//go:generate mockgen -source=cli.go -destination=../mocks/cli/mock_engine.go -package=mock_cli Engine
type Engine interface {
	CreateAttempt(ctx context.Context, req engine.CreateAttemptRequest) (*attempt.Attempt, error)
	NextQuestion(ctx context.Context, attemptID string) (*engine.QuestionView, error)
	SubmitAnswer(ctx context.Context, req engine.SubmitAnswerRequest) (*engine.SubmitResult, error)
	GradeReview(ctx context.Context, questionID int64, g review.Grade) (review.State, error)
	GetDueStatistics(ctx context.Context, filter question.Filter) (statistics.DueBuckets, error)
	GetUserAccuracy(ctx context.Context, userID int64) ([]statistics.QuestionAccuracy, error)
	GetAttempt(ctx context.Context, attemptID string) (*attempt.Attempt, []attempt.AnswerRecord, error)
}

// Session is one interaction round of an interactive drill.
type Session interface {
	Session(ctx context.Context) error
}

// interactiveCLI carries the terminal plumbing shared by the drills.
type interactiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

func newInteractiveCLI() *interactiveCLI {
	return &interactiveCLI{
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// readLine reads one trimmed input line.
func (cli *interactiveCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (cli *interactiveCLI) printf(format string, args ...any) {
	fmt.Fprintf(cli.stdoutWriter, format, args...)
}

// Run drives a session loop until it ends or the user interrupts.
func Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}
