// Package selection picks the candidate questions for a practice attempt.
//
// Each selection mode is one pure strategy over the same inputs: the scoped
// question set from the store and, for history-driven modes, the learner's
// past answers. Corrupt or incomplete questions are excluded before any
// counting so they can never reach a learner.
package selection

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/statistics"
)

var (
	// ErrInvalidScope marks a client-input failure: missing or nonsensical
	// scope parameters. Never retried.
	ErrInvalidScope = errors.New("invalid selection scope")
	// ErrNoCandidates means the filters were valid but matched no usable
	// questions. Distinct from ErrInvalidScope so callers can suggest
	// different filters instead of reporting a failure.
	ErrNoCandidates = errors.New("no questions available for the requested filters")
)

//go:generate mockgen -source=selector.go -destination=../mocks/selection/mock_stores.go -package=mock_selection

// QuestionStore is the slice of the content store the selector consumes.
type QuestionStore interface {
	Find(ctx context.Context, filter question.Filter) ([]question.Question, error)
	FindFavorites(ctx context.Context, userID int64) ([]question.Question, error)
}

// HistoryStore provides the learner's past answers for history-driven modes.
type HistoryStore interface {
	FindUserHistory(ctx context.Context, userID int64, questionIDs []int64) ([]attempt.AnswerRecord, error)
}

// Params carries the scope filters shared by every mode. Zero values mean
// "unconstrained" except Count, which is required by count-capped modes.
type Params struct {
	UserID       int64
	OppositionID int64
	TopicIDs     []int64
	Difficulty   int
	Count        int
	Criterion    Criterion // ModeFiltered only
	Order        Order     // ModeFiltered only
}

// Selector dispatches a selection mode to its strategy. Select is safe for
// concurrent use; the shared random source is guarded by rngMu.
type Selector struct {
	questions QuestionStore
	history   HistoryStore
	now       func() time.Time
	rngMu     sync.Mutex
	rng       *rand.Rand
}

// NewSelector creates a Selector over the given stores.
func NewSelector(questions QuestionStore, history HistoryStore) *Selector {
	return &Selector{
		questions: questions,
		history:   history,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select returns the validated, ordered candidate list for the mode.
func (s *Selector) Select(ctx context.Context, mode Mode, p Params) ([]question.Question, error) {
	switch mode {
	case ModeRandom:
		return s.selectRandom(ctx, p)
	case ModeFiltered:
		return s.selectFiltered(ctx, p)
	case ModeDue:
		return s.selectDue(ctx, p)
	case ModeExamSimulation:
		return s.selectExamSimulation(ctx, p)
	case ModeFavorites:
		return s.selectFavorites(ctx, p)
	case ModeStreak:
		return s.selectStreak(ctx, p)
	default:
		return nil, fmt.Errorf("%w: unknown selection mode %d", ErrInvalidScope, int(mode))
	}
}

// scoped loads the published questions in scope and drops incomplete ones.
func (s *Selector) scoped(ctx context.Context, p Params) ([]question.Question, error) {
	found, err := s.questions.Find(ctx, question.Filter{
		OppositionID: p.OppositionID,
		TopicIDs:     p.TopicIDs,
		Difficulty:   p.Difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("questions.Find() > %w", err)
	}
	return filterComplete(found), nil
}

func filterComplete(questions []question.Question) []question.Question {
	valid := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsComplete() {
			valid = append(valid, q)
		}
	}
	return valid
}

func (s *Selector) shuffleQuestions(questions []question.Question) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func capCount(questions []question.Question, count int) []question.Question {
	if count > 0 && count < len(questions) {
		return questions[:count]
	}
	return questions
}

func (s *Selector) selectRandom(ctx context.Context, p Params) ([]question.Question, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("%w: a positive question count is required", ErrInvalidScope)
	}
	candidates, err := s.scoped(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	s.shuffleQuestions(candidates)
	return capCount(candidates, p.Count), nil
}

func (s *Selector) selectFiltered(ctx context.Context, p Params) ([]question.Question, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("%w: a positive question count is required", ErrInvalidScope)
	}
	scope, err := s.scoped(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return nil, ErrNoCandidates
	}

	ids := questionIDs(scope)
	records, err := s.history.FindUserHistory(ctx, p.UserID, ids)
	if err != nil {
		return nil, fmt.Errorf("history.FindUserHistory() > %w", err)
	}
	byQuestion := statistics.HistoryByQuestion(records)

	candidates, err := s.applyCriterion(scope, byQuestion, p.Criterion)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	s.applyOrder(candidates, byQuestion, p.Order)
	return capCount(candidates, p.Count), nil
}

func (s *Selector) applyCriterion(
	scope []question.Question,
	byQuestion map[int64]statistics.QuestionHistory,
	criterion Criterion,
) ([]question.Question, error) {
	now := s.now()
	var keep func(q question.Question) bool

	switch criterion {
	case CriterionMostMissed:
		keep = func(q question.Question) bool { return byQuestion[q.ID].Errors > 0 }
	case CriterionNeverAnswered:
		keep = func(q question.Question) bool { return byQuestion[q.ID].Answered == 0 }
	case CriterionLastAnswerWrong:
		keep = func(q question.Question) bool {
			h := byQuestion[q.ID]
			return h.Answered > 0 && !h.LastCorrect
		}
	case CriterionLowestAccuracy:
		answered := filterQuestions(scope, func(q question.Question) bool {
			return byQuestion[q.ID].Answered > 0
		})
		sort.SliceStable(answered, func(i, j int) bool {
			return accuracy(byQuestion[answered[i].ID]) < accuracy(byQuestion[answered[j].ID])
		})
		return answered, nil
	case CriterionMostAnswered:
		out := append([]question.Question(nil), scope...)
		sort.SliceStable(out, func(i, j int) bool {
			return byQuestion[out[i].ID].Answered > byQuestion[out[j].ID].Answered
		})
		return out, nil
	case CriterionLeastAnswered:
		out := append([]question.Question(nil), scope...)
		sort.SliceStable(out, func(i, j int) bool {
			return byQuestion[out[i].ID].Answered < byQuestion[out[j].ID].Answered
		})
		return out, nil
	case CriterionDue:
		keep = func(q question.Question) bool { return q.State.IsDue(now) }
	default:
		return nil, fmt.Errorf("%w: unknown criterion %d", ErrInvalidScope, int(criterion))
	}

	return filterQuestions(scope, keep), nil
}

func (s *Selector) applyOrder(
	candidates []question.Question,
	byQuestion map[int64]statistics.QuestionHistory,
	order Order,
) {
	switch order {
	case OrderDifficultyAsc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Difficulty < candidates[j].Difficulty
		})
	case OrderDifficultyDesc:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Difficulty > candidates[j].Difficulty
		})
	case OrderErrorCount:
		sort.SliceStable(candidates, func(i, j int) bool {
			return byQuestion[candidates[i].ID].Errors > byQuestion[candidates[j].ID].Errors
		})
	default:
		s.shuffleQuestions(candidates)
	}
}

func (s *Selector) selectDue(ctx context.Context, p Params) ([]question.Question, error) {
	scope, err := s.scoped(ctx, p)
	if err != nil {
		return nil, err
	}
	now := s.now()
	due := filterQuestions(scope, func(q question.Question) bool { return q.State.IsDue(now) })
	if len(due) == 0 {
		return nil, ErrNoCandidates
	}
	return capCount(due, p.Count), nil
}

func (s *Selector) selectFavorites(ctx context.Context, p Params) ([]question.Question, error) {
	favorites, err := s.questions.FindFavorites(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("questions.FindFavorites() > %w", err)
	}

	inScope := filterComplete(filterQuestions(favorites, func(q question.Question) bool {
		if p.OppositionID != 0 && q.OppositionID != p.OppositionID {
			return false
		}
		if len(p.TopicIDs) > 0 && !containsID(p.TopicIDs, q.TopicID) {
			return false
		}
		if p.Difficulty != 0 && q.Difficulty != p.Difficulty {
			return false
		}
		return true
	}))
	if len(inScope) == 0 {
		return nil, ErrNoCandidates
	}
	s.shuffleQuestions(inScope)
	return capCount(inScope, p.Count), nil
}

// selectStreak loads the whole scope with no count cap and shuffles it once;
// the result becomes the attempt's frozen pool.
func (s *Selector) selectStreak(ctx context.Context, p Params) ([]question.Question, error) {
	candidates, err := s.scoped(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	s.shuffleQuestions(candidates)
	return candidates, nil
}

func questionIDs(questions []question.Question) []int64 {
	ids := make([]int64, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func filterQuestions(questions []question.Question, keep func(question.Question) bool) []question.Question {
	out := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func accuracy(h statistics.QuestionHistory) float64 {
	if h.Answered == 0 {
		return 0
	}
	return float64(h.Correct) / float64(h.Answered)
}
