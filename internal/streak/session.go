// Package streak implements the sustained-correct-run session: the learner
// must answer a target number of questions correctly in a row, any miss
// resets the run, and the attempt finishes the moment the target is reached.
//
// A Session is a pure state machine over an attempt and its answer records.
// It performs no I/O: the engine loads state under the store's per-attempt
// lock, lets the session compute the transition, and persists the result.
package streak

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/shuffle"
)

var (
	// ErrAttemptFinished rejects submissions to a terminal attempt.
	ErrAttemptFinished = errors.New("attempt already finished")
	// ErrQuestionNotInPool rejects questions outside the frozen pool.
	ErrQuestionNotInPool = errors.New("question is not part of the attempt pool")
	// ErrPoolExhausted signals that the pool has no offerable question left.
	// Distinct from normal completion so callers never silently end a session.
	ErrPoolExhausted = errors.New("no more questions available in the pool")
)

// Session wraps an attempt's frozen pool and answer records.
type Session struct {
	att     *attempt.Attempt
	answers map[int64]attempt.AnswerRecord
	policy  NextPolicy

	lastRecord *attempt.AnswerRecord
}

// NewSession builds a session over the attempt state loaded by the caller.
func NewSession(att *attempt.Attempt, answers []attempt.AnswerRecord, policy NextPolicy) *Session {
	byQuestion := make(map[int64]attempt.AnswerRecord, len(answers))
	for _, rec := range answers {
		byQuestion[rec.QuestionID] = rec
	}
	return &Session{att: att, answers: byQuestion, policy: policy}
}

// Result is the outcome of one answer submission.
type Result struct {
	Correct         bool
	CorrectLabel    string // remapped label, revealed as feedback
	ShuffleFallback bool   // content integrity problem, caller must flag it
	StreakCurrent   int
	StreakMax       int
	Finished        bool
	Score           float64 // only meaningful when Finished
}

// Submit grades the answer and advances the streak. Re-submitting a question
// replaces its previous answer record: the old contribution is subtracted
// before the new one is added, so client retries are safe.
func (s *Session) Submit(q question.Question, selectedOption string, now time.Time) (Result, error) {
	if s.att.Finished() {
		return Result{}, ErrAttemptFinished
	}
	if !s.att.InPool(q.ID) {
		return Result{}, ErrQuestionNotInPool
	}

	shuffled := shuffle.Options(strconv.FormatInt(q.ID, 10), q.Options(), q.CorrectOption)
	correct := selectedOption == shuffled.CorrectLabel

	var prev *attempt.AnswerRecord
	if rec, ok := s.answers[q.ID]; ok {
		prev = &rec
	}
	dCorrect, dIncorrect := AnswerDelta(prev, correct)
	s.att.CorrectCount += dCorrect
	s.att.IncorrectCount += dIncorrect

	if correct {
		s.att.StreakCurrent++
	} else {
		s.att.StreakCurrent = 0
	}
	if s.att.StreakCurrent > s.att.StreakMax {
		s.att.StreakMax = s.att.StreakCurrent
	}

	record := attempt.AnswerRecord{
		AttemptID:      s.att.ID,
		QuestionID:     q.ID,
		SelectedOption: selectedOption,
		Correct:        correct,
		AnsweredAt:     now,
		UpdatedAt:      now,
	}
	if prev != nil {
		record.AnsweredAt = prev.AnsweredAt
	}
	s.answers[q.ID] = record
	s.lastRecord = &record

	result := Result{
		Correct:         correct,
		CorrectLabel:    shuffled.CorrectLabel,
		ShuffleFallback: shuffled.Fallback,
		StreakCurrent:   s.att.StreakCurrent,
		StreakMax:       s.att.StreakMax,
	}

	if s.att.StreakCurrent == s.att.StreakTarget {
		score := finalScore(s.att.CorrectCount, s.att.IncorrectCount)
		s.att.Score = &score
		finished := now
		s.att.FinishedAt = &finished
		result.Finished = true
		result.Score = score
	}

	return result, nil
}

// LastRecord returns the answer record produced by the latest Submit,
// or nil when nothing was submitted yet.
func (s *Session) LastRecord() *attempt.AnswerRecord {
	return s.lastRecord
}

// NextQuestionID picks the next question to offer from the frozen pool.
func (s *Session) NextQuestionID(rng Rand) (int64, error) {
	if s.att.Finished() {
		return 0, ErrAttemptFinished
	}
	return s.policy.Next(s.att.QuestionIDs, s.answers, rng)
}

// AnswerDelta returns the correct/incorrect counter adjustments when a new
// answer replaces prev (nil when the question was never answered). The
// previous contribution is subtracted first, making repeated submissions
// idempotent in effect.
func AnswerDelta(prev *attempt.AnswerRecord, correct bool) (dCorrect, dIncorrect int) {
	if prev != nil {
		if prev.Correct {
			dCorrect--
		} else {
			dIncorrect--
		}
	}
	if correct {
		dCorrect++
	} else {
		dIncorrect++
	}
	return dCorrect, dIncorrect
}

func finalScore(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct) / float64(total) * 10)
}
