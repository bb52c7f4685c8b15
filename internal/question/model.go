// Package question provides the question domain model and its repository.
package question

import (
	"time"

	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/shuffle"
)

// Labels accepted as a stored correct option.
const (
	LabelA = "A"
	LabelB = "B"
	LabelC = "C"
	LabelD = "D"
)

// Question is an exam question. Content fields are immutable after import;
// the embedded review state is updated on every graded answer.
type Question struct {
	ID            int64  `db:"id"`
	OppositionID  int64  `db:"opposition_id"`
	TopicID       int64  `db:"topic_id"`
	Statement     string `db:"statement"`
	OptionA       string `db:"option_a"`
	OptionB       string `db:"option_b"`
	OptionC       string `db:"option_c"`
	OptionD       string `db:"option_d"`
	CorrectOption string `db:"correct_option"`
	Difficulty    int    `db:"difficulty"`
	Published     bool   `db:"published"`

	// Review-state projection, flattened into the questions table.
	review.State

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Options returns the populated answer options in stored order. A question
// without a fourth option yields three entries.
func (q Question) Options() []shuffle.Option {
	opts := []shuffle.Option{
		{Label: LabelA, Text: q.OptionA},
		{Label: LabelB, Text: q.OptionB},
		{Label: LabelC, Text: q.OptionC},
	}
	if q.OptionD != "" {
		opts = append(opts, shuffle.Option{Label: LabelD, Text: q.OptionD})
	}
	return opts
}

// IsComplete reports whether the question is safe to show to a learner:
// non-empty statement, options A-C populated, and a correct label that points
// at a populated option. Incomplete questions are silently excluded from
// every selection mode.
func (q Question) IsComplete() bool {
	if q.Statement == "" || q.OptionA == "" || q.OptionB == "" || q.OptionC == "" {
		return false
	}
	switch q.CorrectOption {
	case LabelA, LabelB, LabelC:
		return true
	case LabelD:
		return q.OptionD != ""
	default:
		return false
	}
}

// Filter scopes a question query. Zero values mean "no constraint" except
// Published, which is always applied by the repository.
type Filter struct {
	OppositionID int64
	TopicIDs     []int64
	Difficulty   int
}
