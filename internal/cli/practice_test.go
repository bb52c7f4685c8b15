package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/engine"
	mock_cli "github.com/opodrill/opodrill/internal/mocks/cli"
	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/shuffle"
)

func newTestCLI(input string) (*interactiveCLI, *bytes.Buffer) {
	var out bytes.Buffer
	return &interactiveCLI{
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: &out,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}, &out
}

func testView() *engine.QuestionView {
	return &engine.QuestionView{
		QuestionID: 1,
		Statement:  "Capital of France?",
		Options: []shuffle.Option{
			{Label: "A", Text: "Lyon"},
			{Label: "B", Text: "Paris"},
			{Label: "C", Text: "Marseille"},
		},
	}
}

func TestPracticeCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		result     *engine.SubmitResult
		wantOutput []string
	}{
		{
			name:       "correct answer",
			input:      "b\n",
			result:     &engine.SubmitResult{Correct: true, CorrectLabel: "B"},
			wantOutput: []string{"Capital of France?", "B) Paris", "Your answer:"},
		},
		{
			name:       "wrong answer reveals correct label",
			input:      "A\n",
			result:     &engine.SubmitResult{Correct: false, CorrectLabel: "B"},
			wantOutput: []string{"Your answer:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			eng := mock_cli.NewMockEngine(ctrl)
			base, out := newTestCLI(tt.input)
			cli := &PracticeCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

			eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)
			eng.EXPECT().SubmitAnswer(gomock.Any(), engine.SubmitAnswerRequest{
				AttemptID:      "att-1",
				QuestionID:     1,
				SelectedOption: strings.ToUpper(strings.TrimSpace(tt.input)),
			}).Return(tt.result, nil)

			require.NoError(t, cli.Session(context.Background()))
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestPracticeCLI_SessionSkipsEmptyAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("\n")
	cli := &PracticeCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)

	require.NoError(t, cli.Session(context.Background()))
	assert.Contains(t, out.String(), "Skipped.")
}

func TestPracticeCLI_SessionStreakProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("B\n")
	cli := &PracticeCLI{interactiveCLI: base, engine: eng, attemptID: "att-1", isStreak: true}

	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)
	eng.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).
		Return(&engine.SubmitResult{Correct: true, CorrectLabel: "B", StreakCurrent: 3, StreakMax: 4}, nil)

	require.NoError(t, cli.Session(context.Background()))
	assert.Contains(t, out.String(), "Streak: 3 (best 4)")
}

func TestPracticeCLI_SessionEndsWhenFinished(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("B\n")
	cli := &PracticeCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

	score := 10.0
	finished := &engine.SubmitResult{Correct: true, CorrectLabel: "B", Finished: true, Score: &score}
	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)
	eng.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).Return(finished, nil)
	eng.EXPECT().GetAttempt(gomock.Any(), "att-1").
		Return(&attempt.Attempt{ID: "att-1", CorrectCount: 5, Score: &score}, nil, nil)

	err := cli.Session(context.Background())
	assert.ErrorIs(t, err, errEnd)
	assert.Contains(t, out.String(), "Practice finished: 5 correct, 0 wrong.")
}

func TestPracticeCLI_SessionEndsOnExhaustedPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("")
	cli := &PracticeCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(nil, engine.ErrPoolExhausted)
	eng.EXPECT().GetAttempt(gomock.Any(), "att-1").
		Return(&attempt.Attempt{ID: "att-1", CorrectCount: 2, IncorrectCount: 1}, nil, nil)

	err := cli.Session(context.Background())
	assert.ErrorIs(t, err, errEnd)
	assert.Contains(t, out.String(), "Practice finished: 2 correct, 1 wrong.")
}

func TestReviewCLI_Session(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("B\nhard\n")
	cli := &ReviewCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)
	eng.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).
		Return(&engine.SubmitResult{Correct: true, CorrectLabel: "B"}, nil)
	eng.EXPECT().GradeReview(gomock.Any(), int64(1), review.GradeHard).
		Return(review.State{IntervalDays: 3}, nil)

	require.NoError(t, cli.Session(context.Background()))
	assert.Contains(t, out.String(), "Next review in 3 day(s).")
}

func TestReviewCLI_SessionDefaultGrade(t *testing.T) {
	tests := []struct {
		name      string
		correct   bool
		wantGrade review.Grade
	}{
		{"empty grade after correct answer defaults to good", true, review.GradeGood},
		{"empty grade after wrong answer defaults to again", false, review.GradeAgain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			eng := mock_cli.NewMockEngine(ctrl)
			base, _ := newTestCLI("B\n\n")
			cli := &ReviewCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

			eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(testView(), nil)
			eng.EXPECT().SubmitAnswer(gomock.Any(), gomock.Any()).
				Return(&engine.SubmitResult{Correct: tt.correct, CorrectLabel: "B"}, nil)
			eng.EXPECT().GradeReview(gomock.Any(), int64(1), tt.wantGrade).
				Return(review.State{IntervalDays: 1}, nil)

			require.NoError(t, cli.Session(context.Background()))
		})
	}
}

func TestReviewCLI_SessionEndsWhenNothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mock_cli.NewMockEngine(ctrl)
	base, out := newTestCLI("")
	cli := &ReviewCLI{interactiveCLI: base, engine: eng, attemptID: "att-1"}

	eng.EXPECT().NextQuestion(gomock.Any(), "att-1").Return(nil, engine.ErrPoolExhausted)

	err := cli.Session(context.Background())
	assert.ErrorIs(t, err, errEnd)
	assert.Contains(t, out.String(), "No more questions due for review.")
}
