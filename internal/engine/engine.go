// Package engine wires the selection, streak, review and statistics logic to
// the stores and exposes the operations the CLI and the HTTP server share.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
	"github.com/opodrill/opodrill/internal/selection"
	"github.com/opodrill/opodrill/internal/shuffle"
	"github.com/opodrill/opodrill/internal/statistics"
	"github.com/opodrill/opodrill/internal/streak"
)

// The engine re-exports the sentinel errors of its collaborators so callers
// can classify failures with a single import.
var (
	ErrAttemptNotFound   = attempt.ErrNotFound
	ErrQuestionNotFound  = question.ErrNotFound
	ErrAttemptFinished   = streak.ErrAttemptFinished
	ErrQuestionNotInPool = streak.ErrQuestionNotInPool
	ErrPoolExhausted     = streak.ErrPoolExhausted
	ErrInvalidScope      = selection.ErrInvalidScope
	ErrNoCandidates      = selection.ErrNoCandidates
	ErrInvalidGrade      = review.ErrInvalidGrade
)

// Selector abstracts the question selection strategy dispatch.
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine/mock_selector.go -package=mock_engine Selector
type Selector interface {
	Select(ctx context.Context, mode selection.Mode, p selection.Params) ([]question.Question, error)
}

// Service is the application facade over the stores and the domain logic.
type Service struct {
	questions question.Repository
	attempts  attempt.Repository
	selector  Selector
	policy    streak.NextPolicy
	logger    *slog.Logger
	validate  *validator.Validate

	defaultStreakTarget int

	now   func() time.Time
	newID func() string
	rng   streak.Rand
}

// lockedRand guards a shared random source; NextQuestion runs on concurrent
// HTTP handlers.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// NewService creates the engine. The policy decides which pool question a
// streak session offers next; defaultStreakTarget applies when a streak
// attempt is created without an explicit target.
func NewService(
	questions question.Repository,
	attempts attempt.Repository,
	selector Selector,
	policy streak.NextPolicy,
	defaultStreakTarget int,
	logger *slog.Logger,
) *Service {
	return &Service{
		questions:           questions,
		attempts:            attempts,
		selector:            selector,
		policy:              policy,
		logger:              logger,
		validate:            validator.New(),
		defaultStreakTarget: defaultStreakTarget,
		now:                 time.Now,
		newID:               uuid.NewString,
		rng:                 &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
}

// CreateAttemptRequest scopes a new practice attempt.
type CreateAttemptRequest struct {
	UserID       int64   `json:"user_id" validate:"required"`
	Mode         string  `json:"mode" validate:"required"`
	OppositionID int64   `json:"opposition_id"`
	TopicIDs     []int64 `json:"topic_ids"`
	Difficulty   int     `json:"difficulty" validate:"min=0"`
	Count        int     `json:"count" validate:"min=0"`
	Criterion    string  `json:"criterion"`
	Order        string  `json:"order"`
	StreakTarget int     `json:"streak_target" validate:"min=0"`
}

// CreateAttempt selects the candidate pool for the requested mode, freezes it
// and persists the new attempt.
func (s *Service) CreateAttempt(ctx context.Context, req CreateAttemptRequest) (*attempt.Attempt, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScope, err)
	}
	mode, err := selection.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	params := selection.Params{
		UserID:       req.UserID,
		OppositionID: req.OppositionID,
		TopicIDs:     req.TopicIDs,
		Difficulty:   req.Difficulty,
		Count:        req.Count,
	}
	if mode == selection.ModeFiltered {
		if params.Criterion, err = selection.ParseCriterion(req.Criterion); err != nil {
			return nil, err
		}
		if req.Order != "" {
			if params.Order, err = selection.ParseOrder(req.Order); err != nil {
				return nil, err
			}
		}
	}

	candidates, err := s.selector.Select(ctx, mode, params)
	if err != nil {
		return nil, err
	}

	att := &attempt.Attempt{
		ID:          s.newID(),
		UserID:      req.UserID,
		Mode:        mode.String(),
		QuestionIDs: questionIDs(candidates),
		StartedAt:   s.now(),
	}
	if mode == selection.ModeStreak {
		att.StreakTarget = req.StreakTarget
		if att.StreakTarget == 0 {
			att.StreakTarget = s.defaultStreakTarget
		}
	}

	if err := s.attempts.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("attempts.Create() > %w", err)
	}
	return att, nil
}

// QuestionView is a question rendered for presentation: shuffled options,
// correct label withheld.
type QuestionView struct {
	QuestionID int64            `json:"question_id"`
	TopicID    int64            `json:"topic_id"`
	Statement  string           `json:"statement"`
	Options    []shuffle.Option `json:"options"`
	Difficulty int              `json:"difficulty"`
}

// NextQuestion picks the next question of the attempt and renders it.
func (s *Service) NextQuestion(ctx context.Context, attemptID string) (*QuestionView, error) {
	att, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answers, err := s.attempts.FindAnswers(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempts.FindAnswers() > %w", err)
	}

	var questionID int64
	if att.Mode == selection.ModeStreak.String() {
		sess := streak.NewSession(att, answers, s.policy)
		questionID, err = sess.NextQuestionID(s.rng)
	} else {
		questionID, err = nextUnanswered(att, answers)
	}
	if err != nil {
		return nil, err
	}

	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.renderQuestion(q), nil
}

// renderQuestion shuffles the options. A shuffle fallback means the stored
// correct label points at no option; the question is still served in its
// stored order, but the inconsistency is flagged for content review.
func (s *Service) renderQuestion(q *question.Question) *QuestionView {
	shuffled := shuffle.Options(strconv.FormatInt(q.ID, 10), q.Options(), q.CorrectOption)
	if shuffled.Fallback {
		s.logger.Warn("correct option missing, serving unshuffled",
			slog.Int64("question_id", q.ID),
			slog.String("correct_option", q.CorrectOption))
	}
	return &QuestionView{
		QuestionID: q.ID,
		TopicID:    q.TopicID,
		Statement:  q.Statement,
		Options:    shuffled.Options,
		Difficulty: q.Difficulty,
	}
}

// nextUnanswered returns the first pool question without an answer record.
func nextUnanswered(att *attempt.Attempt, answers []attempt.AnswerRecord) (int64, error) {
	if att.Finished() {
		return 0, ErrAttemptFinished
	}
	answered := make(map[int64]bool, len(answers))
	for _, rec := range answers {
		answered[rec.QuestionID] = true
	}
	for _, id := range att.QuestionIDs {
		if !answered[id] {
			return id, nil
		}
	}
	return 0, ErrPoolExhausted
}

func questionIDs(questions []question.Question) []int64 {
	ids := make([]int64, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

// GradeReview applies a self-assessed review grade to a question's schedule.
func (s *Service) GradeReview(ctx context.Context, questionID int64, g review.Grade) (review.State, error) {
	if err := g.Validate(); err != nil {
		return review.State{}, err
	}
	q, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return review.State{}, err
	}
	next := review.Apply(q.State, g, s.now())
	if err := s.questions.SaveReviewState(ctx, questionID, next); err != nil {
		return review.State{}, fmt.Errorf("questions.SaveReviewState() > %w", err)
	}
	return next, nil
}

// GetDueStatistics partitions the scoped questions into due buckets.
func (s *Service) GetDueStatistics(ctx context.Context, filter question.Filter) (statistics.DueBuckets, error) {
	questions, err := s.questions.Find(ctx, filter)
	if err != nil {
		return statistics.DueBuckets{}, fmt.Errorf("questions.Find() > %w", err)
	}
	return statistics.CountDueBuckets(questions, s.now()), nil
}

// GetUserAccuracy returns per-question accuracy rows over the user's whole
// answer history.
func (s *Service) GetUserAccuracy(ctx context.Context, userID int64) ([]statistics.QuestionAccuracy, error) {
	records, err := s.attempts.FindUserHistory(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("attempts.FindUserHistory() > %w", err)
	}
	return statistics.AccuracyRows(records), nil
}

// GetAttempt loads an attempt with its answers, for progress views and reports.
func (s *Service) GetAttempt(ctx context.Context, attemptID string) (*attempt.Attempt, []attempt.AnswerRecord, error) {
	att, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	answers, err := s.attempts.FindAnswers(ctx, attemptID)
	if err != nil {
		return nil, nil, fmt.Errorf("attempts.FindAnswers() > %w", err)
	}
	return att, answers, nil
}

// SetFavorite stars or unstars a question for the user.
func (s *Service) SetFavorite(ctx context.Context, userID, questionID int64, favorite bool) error {
	if _, err := s.questions.Get(ctx, questionID); err != nil {
		return err
	}
	return s.questions.SetFavorite(ctx, userID, questionID, favorite)
}
