package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opodrill/opodrill/internal/attempt"
)

// stubRand returns canned values so policy sampling is deterministic.
type stubRand struct {
	floats []float64
	ints   []int
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 1.0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func answered(questionID int64, correct bool) attempt.AnswerRecord {
	return attempt.AnswerRecord{QuestionID: questionID, Correct: correct}
}

func TestStrictPriorityPolicy(t *testing.T) {
	pool := []int64{10, 20, 30}

	tests := []struct {
		name    string
		answers map[int64]attempt.AnswerRecord
		want    int64
		wantErr error
	}{
		{
			name:    "unanswered come first in pool order",
			answers: map[int64]attempt.AnswerRecord{10: answered(10, false)},
			want:    20,
		},
		{
			name: "wrong answers replayed once pool is covered",
			answers: map[int64]attempt.AnswerRecord{
				10: answered(10, true),
				20: answered(20, false),
				30: answered(30, true),
			},
			want: 20,
		},
		{
			name: "all correct exhausts the pool",
			answers: map[int64]attempt.AnswerRecord{
				10: answered(10, true),
				20: answered(20, true),
				30: answered(30, true),
			},
			wantErr: ErrPoolExhausted,
		},
		{
			name:    "empty answers yield the first pool question",
			answers: map[int64]attempt.AnswerRecord{},
			want:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StrictPriorityPolicy{}.Next(pool, tt.answers, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpacedReplayPolicy_BelowThresholdNeverReplays(t *testing.T) {
	pool := []int64{1, 2, 3}
	answers := map[int64]attempt.AnswerRecord{
		1: answered(1, true),
		2: answered(2, true),
		3: answered(3, true),
	}

	p := SpacedReplayPolicy{ReplayRate: 1.0, MinCorrect: 10}
	_, err := p.Next(pool, answers, &stubRand{floats: []float64{0, 0, 0}})
	assert.ErrorIs(t, err, ErrPoolExhausted, "replay only kicks in past the correct-answer threshold")
}

func TestSpacedReplayPolicy_SamplesCorrectQuestions(t *testing.T) {
	pool := []int64{1, 2, 3}
	answers := map[int64]attempt.AnswerRecord{
		1: answered(1, true),
		2: answered(2, true),
		3: answered(3, true),
	}

	p := SpacedReplayPolicy{ReplayRate: 0.5, MinCorrect: 3}

	// draws 0.4, 0.9, 0.1: questions 1 and 3 pass the replay coin flip
	rng := &stubRand{floats: []float64{0.4, 0.9, 0.1}, ints: []int{1}}
	got, err := p.Next(pool, answers, rng)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestSpacedReplayPolicy_PrefersOutstandingQuestions(t *testing.T) {
	pool := []int64{1, 2, 3}
	answers := map[int64]attempt.AnswerRecord{
		1: answered(1, true),
		2: answered(2, false),
	}

	// no replay draws succeed, so candidates are the unanswered and wrong ones
	p := SpacedReplayPolicy{ReplayRate: 0.1, MinCorrect: 1}
	rng := &stubRand{floats: []float64{1, 1, 1}, ints: []int{0}}
	got, err := p.Next(pool, answers, rng)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestSpacedReplayPolicy_Defaults(t *testing.T) {
	pool := []int64{1}
	answers := map[int64]attempt.AnswerRecord{1: answered(1, true)}

	// one correct answer is below the default threshold of ten
	_, err := SpacedReplayPolicy{}.Next(pool, answers, &stubRand{floats: []float64{0}})
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
