package selection

import "fmt"

// Mode enumerates the question-selection policies. The set is closed:
// Selector.Select dispatches over it exhaustively.
type Mode int

const (
	ModeRandom Mode = iota
	ModeFiltered
	ModeDue
	ModeExamSimulation
	ModeFavorites
	ModeStreak
)

var modeNames = map[Mode]string{
	ModeRandom:         "random",
	ModeFiltered:       "filtered",
	ModeDue:            "due",
	ModeExamSimulation: "exam",
	ModeFavorites:      "favorites",
	ModeStreak:         "streak",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown selection mode %q", ErrInvalidScope, name)
}

// Criterion is the secondary filter applied by ModeFiltered, computed from
// the learner's answer history.
type Criterion int

const (
	CriterionMostMissed Criterion = iota
	CriterionNeverAnswered
	CriterionLastAnswerWrong
	CriterionLowestAccuracy
	CriterionMostAnswered
	CriterionLeastAnswered
	CriterionDue
)

var criterionNames = map[Criterion]string{
	CriterionMostMissed:      "most_missed",
	CriterionNeverAnswered:   "never_answered",
	CriterionLastAnswerWrong: "last_answer_wrong",
	CriterionLowestAccuracy:  "lowest_accuracy",
	CriterionMostAnswered:    "most_answered",
	CriterionLeastAnswered:   "least_answered",
	CriterionDue:             "due",
}

func (c Criterion) String() string {
	if name, ok := criterionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

// ParseCriterion converts a criterion name to a Criterion.
func ParseCriterion(name string) (Criterion, error) {
	for c, n := range criterionNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown criterion %q", ErrInvalidScope, name)
}

// Order is the caller-selected ordering of a filtered candidate set.
type Order int

const (
	OrderRandom Order = iota
	OrderDifficultyAsc
	OrderDifficultyDesc
	OrderErrorCount
)

var orderNames = map[Order]string{
	OrderRandom:         "random",
	OrderDifficultyAsc:  "difficulty_asc",
	OrderDifficultyDesc: "difficulty_desc",
	OrderErrorCount:     "error_count",
}

func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder converts an order name to an Order.
func ParseOrder(name string) (Order, error) {
	for o, n := range orderNames {
		if n == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown order %q", ErrInvalidScope, name)
}
