// Package review implements the spaced-repetition schedule for questions.
//
// The algorithm is an SM-2 variant with four grades instead of six: the ease
// factor grows or shrinks with each grade, the interval follows the usual
// 1 day / 6 days / interval*EF ladder, and hard/easy answers additionally
// scale the resulting interval. All functions are pure; persistence of the
// computed state belongs to the question store.
package review

import (
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// Interval multipliers applied after the SM-2 ladder.
	hardIntervalScale = 0.5
	easyIntervalScale = 1.3

	// Ease factor penalty on a failed review.
	againEasePenalty = 0.2
)

// State is the mutable review-state projection of a question.
// A zero DueAt means the question has never been reviewed.
type State struct {
	EaseFactor     float64    `db:"ease_factor"`
	IntervalDays   int        `db:"interval_days"`
	Repetitions    int        `db:"repetitions"`
	DueAt          *time.Time `db:"due_at"`
	LastReviewedAt *time.Time `db:"last_reviewed_at"`
}

// Apply computes the next review state from the previous one and a grade.
// The input state is not mutated. The caller must validate the grade first.
func Apply(prev State, grade Grade, now time.Time) State {
	ef := prev.EaseFactor
	if ef == 0 {
		ef = DefaultEaseFactor
	}

	next := State{}

	if grade == GradeAgain {
		next.EaseFactor = math.Max(MinEaseFactor, ef-againEasePenalty)
		next.IntervalDays = 1
		next.Repetitions = 0
	} else {
		q := float64(grade)
		ef += 0.1 - (3-q)*(0.08+(3-q)*0.02)
		next.EaseFactor = math.Max(MinEaseFactor, ef)
		next.Repetitions = prev.Repetitions + 1

		var interval int
		switch next.Repetitions {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = int(math.Round(float64(prev.IntervalDays) * next.EaseFactor))
		}

		switch grade {
		case GradeHard:
			interval = int(math.Round(float64(interval) * hardIntervalScale))
		case GradeEasy:
			interval = int(math.Round(float64(interval) * easyIntervalScale))
		}
		if interval < 1 {
			interval = 1
		}
		next.IntervalDays = interval
	}

	next.EaseFactor = math.Round(next.EaseFactor*100) / 100

	due := now.AddDate(0, 0, next.IntervalDays)
	next.DueAt = &due
	reviewed := now
	next.LastReviewedAt = &reviewed

	return next
}

// IsDue reports whether the state should be reviewed at the given time.
// A never-reviewed question is always due.
func (s State) IsDue(now time.Time) bool {
	return s.DueAt == nil || !s.DueAt.After(now)
}
