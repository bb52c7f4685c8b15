// Package attempt provides practice-attempt and answer-record models and
// their repository. An attempt owns a frozen candidate pool: the questions
// eligible for the session are fixed at creation and never re-queried.
package attempt

import "time"

// Attempt is one practice session. The pool is immutable after creation;
// counters and streak fields are mutated only through Repository.Update,
// which serializes writers per attempt.
type Attempt struct {
	ID     string `db:"id"`
	UserID int64  `db:"user_id"`
	Mode   string `db:"mode"`

	// Ordered frozen candidate pool, loaded from attempt_questions.
	QuestionIDs []int64 `db:"-"`

	StreakTarget  int `db:"streak_target"`
	StreakCurrent int `db:"streak_current"`
	StreakMax     int `db:"streak_max"`

	CorrectCount   int `db:"correct_count"`
	IncorrectCount int `db:"incorrect_count"`

	Score      *float64   `db:"score"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

// Finished reports whether the attempt reached its terminal state.
func (a *Attempt) Finished() bool {
	return a.FinishedAt != nil
}

// InPool reports whether the question belongs to the frozen candidate pool.
func (a *Attempt) InPool(questionID int64) bool {
	for _, id := range a.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// AnswerRecord is the single logical answer for an (attempt, question) pair.
// In streak mode the record is replaced on re-answer; it is never duplicated.
type AnswerRecord struct {
	AttemptID      string    `db:"attempt_id"`
	QuestionID     int64     `db:"question_id"`
	SelectedOption string    `db:"selected_option"`
	Correct        bool      `db:"correct"`
	AnsweredAt     time.Time `db:"answered_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
