package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/selection"
	"github.com/opodrill/opodrill/internal/shuffle"
	"github.com/opodrill/opodrill/internal/streak"
)

// SubmitAnswerRequest is one answer to one question of an attempt. The
// selected option is a remapped label, i.e. a position in the shuffled order.
type SubmitAnswerRequest struct {
	AttemptID      string `json:"attempt_id" validate:"required"`
	QuestionID     int64  `json:"question_id" validate:"required"`
	SelectedOption string `json:"selected_option" validate:"required,oneof=A B C D"`
}

// SubmitResult is the graded outcome of a submission.
type SubmitResult struct {
	Correct       bool     `json:"correct"`
	CorrectLabel  string   `json:"correct_label"`
	StreakCurrent int      `json:"streak_current,omitempty"`
	StreakMax     int      `json:"streak_max,omitempty"`
	Finished      bool     `json:"finished"`
	Score         *float64 `json:"score,omitempty"`
}

// SubmitAnswer grades the answer under the attempt's row lock and persists
// the transition atomically. After the commit the question's review schedule
// advances with an implicit grade: good when correct, again when not.
func (s *Service) SubmitAnswer(ctx context.Context, req SubmitAnswerRequest) (*SubmitResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScope, err)
	}
	q, err := s.questions.Get(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var result SubmitResult
	var fallback bool
	_, err = s.attempts.Update(ctx, req.AttemptID, func(a *attempt.Attempt, answers []attempt.AnswerRecord) (*attempt.AnswerRecord, error) {
		if a.Mode == selection.ModeStreak.String() {
			sess := streak.NewSession(a, answers, s.policy)
			res, err := sess.Submit(*q, req.SelectedOption, now)
			if err != nil {
				return nil, err
			}
			result = SubmitResult{
				Correct:       res.Correct,
				CorrectLabel:  res.CorrectLabel,
				StreakCurrent: res.StreakCurrent,
				StreakMax:     res.StreakMax,
				Finished:      res.Finished,
			}
			if res.Finished {
				score := res.Score
				result.Score = &score
			}
			fallback = res.ShuffleFallback
			return sess.LastRecord(), nil
		}

		shuffled := shuffle.Options(strconv.FormatInt(q.ID, 10), q.Options(), q.CorrectOption)
		fallback = shuffled.Fallback
		record, res, err := gradeSubmission(a, answers, q.ID, req.SelectedOption, shuffled.CorrectLabel, now)
		if err != nil {
			return nil, err
		}
		result = *res
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	if fallback {
		s.logger.Warn("correct option missing, graded against stored order",
			slog.Int64("question_id", q.ID),
			slog.String("correct_option", q.CorrectOption))
	}

	grade := review.GradeAgain
	if result.Correct {
		grade = review.GradeGood
	}
	next := review.Apply(q.State, grade, now)
	if err := s.questions.SaveReviewState(ctx, q.ID, next); err != nil {
		return nil, fmt.Errorf("questions.SaveReviewState() > %w", err)
	}

	return &result, nil
}

// gradeSubmission handles the non-streak modes: every pool question is
// answered at most its single logical record, and the attempt finishes when
// the pool is exhausted.
func gradeSubmission(
	a *attempt.Attempt,
	answers []attempt.AnswerRecord,
	questionID int64,
	selectedOption string,
	correctLabel string,
	now time.Time,
) (*attempt.AnswerRecord, *SubmitResult, error) {
	if a.Finished() {
		return nil, nil, ErrAttemptFinished
	}
	if !a.InPool(questionID) {
		return nil, nil, ErrQuestionNotInPool
	}

	correct := selectedOption == correctLabel

	var prev *attempt.AnswerRecord
	answered := make(map[int64]bool, len(answers))
	for i := range answers {
		answered[answers[i].QuestionID] = true
		if answers[i].QuestionID == questionID {
			prev = &answers[i]
		}
	}
	answered[questionID] = true

	dCorrect, dIncorrect := streak.AnswerDelta(prev, correct)
	a.CorrectCount += dCorrect
	a.IncorrectCount += dIncorrect

	record := attempt.AnswerRecord{
		AttemptID:      a.ID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		Correct:        correct,
		AnsweredAt:     now,
		UpdatedAt:      now,
	}
	if prev != nil {
		record.AnsweredAt = prev.AnsweredAt
	}

	result := SubmitResult{Correct: correct, CorrectLabel: correctLabel}

	if len(answered) == len(a.QuestionIDs) {
		total := a.CorrectCount + a.IncorrectCount
		score := 0.0
		if total > 0 {
			score = math.Round(float64(a.CorrectCount) / float64(total) * 10)
		}
		a.Score = &score
		a.FinishedAt = &now
		result.Finished = true
		result.Score = &score
	}

	return &record, &result, nil
}
