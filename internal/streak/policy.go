package streak

import (
	"github.com/opodrill/opodrill/internal/attempt"
)

// Rand is the randomness a policy needs; *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NextPolicy picks the next question to offer from the frozen pool.
// Implementations must return ErrPoolExhausted when nothing is offerable.
type NextPolicy interface {
	Next(pool []int64, answers map[int64]attempt.AnswerRecord, rng Rand) (int64, error)
}

// StrictPriorityPolicy offers never-answered questions first, in pool order.
// Previously-wrong questions are only offered once no unanswered question
// remains, and previously-correct questions are never offered again.
// This is the default policy.
type StrictPriorityPolicy struct{}

var _ NextPolicy = StrictPriorityPolicy{}

func (StrictPriorityPolicy) Next(pool []int64, answers map[int64]attempt.AnswerRecord, _ Rand) (int64, error) {
	for _, id := range pool {
		if _, answered := answers[id]; !answered {
			return id, nil
		}
	}
	for _, id := range pool {
		if rec, answered := answers[id]; answered && !rec.Correct {
			return id, nil
		}
	}
	return 0, ErrPoolExhausted
}

// SpacedReplayPolicy offers never-answered and previously-wrong questions,
// and once the learner has MinCorrect correct answers it also replays each
// previously-correct question with probability ReplayRate for reinforcement.
// The offered question is drawn at random from the candidates.
type SpacedReplayPolicy struct {
	ReplayRate float64 // zero means the 10% default
	MinCorrect int     // zero means the default of 10
}

var _ NextPolicy = SpacedReplayPolicy{}

const (
	defaultReplayRate = 0.10
	defaultMinCorrect = 10
)

func (p SpacedReplayPolicy) Next(pool []int64, answers map[int64]attempt.AnswerRecord, rng Rand) (int64, error) {
	replayRate := p.ReplayRate
	if replayRate == 0 {
		replayRate = defaultReplayRate
	}
	minCorrect := p.MinCorrect
	if minCorrect == 0 {
		minCorrect = defaultMinCorrect
	}

	correctAnswered := 0
	for _, rec := range answers {
		if rec.Correct {
			correctAnswered++
		}
	}
	replay := correctAnswered >= minCorrect

	candidates := make([]int64, 0, len(pool))
	for _, id := range pool {
		rec, answered := answers[id]
		switch {
		case !answered || !rec.Correct:
			candidates = append(candidates, id)
		case replay && rng.Float64() < replayRate:
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0, ErrPoolExhausted
	}
	return candidates[rng.Intn(len(candidates))], nil
}
