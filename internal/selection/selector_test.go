package selection

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/opodrill/opodrill/internal/attempt"
	mock_selection "github.com/opodrill/opodrill/internal/mocks/selection"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
)

func completeQuestion(id int64, topicID int64) question.Question {
	return question.Question{
		ID:            id,
		OppositionID:  1,
		TopicID:       topicID,
		Statement:     "statement",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		CorrectOption: "A",
		Difficulty:    int(id % 5),
		Published:     true,
	}
}

func newTestSelector(t *testing.T) (*Selector, *mock_selection.MockQuestionStore, *mock_selection.MockHistoryStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	questions := mock_selection.NewMockQuestionStore(ctrl)
	history := mock_selection.NewMockHistoryStore(ctrl)

	s := NewSelector(questions, history)
	s.rng = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return s, questions, history
}

func TestSelect_Random(t *testing.T) {
	s, questions, _ := newTestSelector(t)

	pool := []question.Question{
		completeQuestion(1, 1),
		completeQuestion(2, 1),
		completeQuestion(3, 1),
		{ID: 4, Statement: "incomplete"}, // dropped by the validity filter
	}
	questions.EXPECT().Find(gomock.Any(), question.Filter{OppositionID: 1}).Return(pool, nil)

	got, err := s.Select(context.Background(), ModeRandom, Params{OppositionID: 1, Count: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, q := range got {
		assert.NotEqual(t, int64(4), q.ID)
	}
}

func TestSelect_RandomRequiresCount(t *testing.T) {
	s, _, _ := newTestSelector(t)
	_, err := s.Select(context.Background(), ModeRandom, Params{OppositionID: 1})
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestSelect_NoCandidates(t *testing.T) {
	s, questions, _ := newTestSelector(t)
	questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := s.Select(context.Background(), ModeRandom, Params{OppositionID: 9, Count: 5})
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.NotErrorIs(t, err, ErrInvalidScope, "empty result is not an input failure")
}

func TestSelect_Filtered(t *testing.T) {
	ctx := context.Background()
	scope := []question.Question{
		completeQuestion(1, 1),
		completeQuestion(2, 1),
		completeQuestion(3, 1),
	}
	history := []attempt.AnswerRecord{
		{QuestionID: 1, Correct: false, AnsweredAt: time.Unix(100, 0)},
		{QuestionID: 1, Correct: false, AnsweredAt: time.Unix(200, 0)},
		{QuestionID: 2, Correct: true, AnsweredAt: time.Unix(300, 0)},
		{QuestionID: 2, Correct: false, AnsweredAt: time.Unix(400, 0)},
	}

	tests := []struct {
		name      string
		criterion Criterion
		order     Order
		wantIDs   []int64
	}{
		{
			name:      "most missed ordered by error count",
			criterion: CriterionMostMissed,
			order:     OrderErrorCount,
			wantIDs:   []int64{1, 2},
		},
		{
			name:      "never answered",
			criterion: CriterionNeverAnswered,
			order:     OrderDifficultyAsc,
			wantIDs:   []int64{3},
		},
		{
			name:      "last answer wrong",
			criterion: CriterionLastAnswerWrong,
			order:     OrderDifficultyAsc,
			wantIDs:   []int64{1, 2},
		},
		{
			name:      "lowest accuracy first",
			criterion: CriterionLowestAccuracy,
			order:     OrderDifficultyAsc, // stable: keeps accuracy order for equal difficulty ordering input
			wantIDs:   []int64{1, 2},
		},
		{
			name:      "least answered resorted by difficulty",
			criterion: CriterionLeastAnswered,
			order:     OrderDifficultyAsc,
			wantIDs:   []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, questions, historyStore := newTestSelector(t)
			questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(scope, nil)
			historyStore.EXPECT().FindUserHistory(gomock.Any(), int64(42), []int64{1, 2, 3}).Return(history, nil)

			got, err := s.Select(ctx, ModeFiltered, Params{
				UserID:       42,
				OppositionID: 1,
				Count:        10,
				Criterion:    tt.criterion,
				Order:        tt.order,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, questionIDs(got))
		})
	}
}

func TestSelect_FilteredLeastAnsweredOrdering(t *testing.T) {
	// difficulty ordering applies after the criterion sort
	s, questions, historyStore := newTestSelector(t)
	scope := []question.Question{completeQuestion(4, 1), completeQuestion(2, 1)}
	questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(scope, nil)
	historyStore.EXPECT().FindUserHistory(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := s.Select(context.Background(), ModeFiltered, Params{
		UserID: 1, Count: 5, Criterion: CriterionLeastAnswered, Order: OrderDifficultyAsc,
	})
	require.NoError(t, err)
	// difficulty = id % 5 so question 2 sorts first
	assert.Equal(t, []int64{2, 4}, questionIDs(got))
}

func TestSelect_Due(t *testing.T) {
	s, questions, _ := newTestSelector(t)
	now := s.now()

	past := now.Add(-time.Hour)
	future := now.Add(48 * time.Hour)

	q1 := completeQuestion(1, 1) // never reviewed: due
	q2 := completeQuestion(2, 1)
	q2.State = review.State{DueAt: &past} // overdue: due
	q3 := completeQuestion(3, 1)
	q3.State = review.State{DueAt: &future} // not due

	questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]question.Question{q1, q2, q3}, nil)

	got, err := s.Select(context.Background(), ModeDue, Params{OppositionID: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, questionIDs(got))
}

func TestSelect_ExamSimulation(t *testing.T) {
	s, questions, _ := newTestSelector(t)

	var scope []question.Question
	id := int64(1)
	for topic := int64(1); topic <= 3; topic++ {
		for i := 0; i < 6; i++ {
			scope = append(scope, completeQuestion(id, topic))
			id++
		}
	}
	questions.EXPECT().Find(gomock.Any(), question.Filter{OppositionID: 1, TopicIDs: []int64{1, 2, 3}}).Return(scope, nil)

	got, err := s.Select(context.Background(), ModeExamSimulation, Params{
		OppositionID: 1,
		TopicIDs:     []int64{1, 2, 3},
		Count:        10,
	})
	require.NoError(t, err)
	require.Len(t, got, 10)

	perTopic := map[int64]int{}
	seen := map[int64]bool{}
	for _, q := range got {
		perTopic[q.TopicID]++
		assert.False(t, seen[q.ID], "question %d drawn twice", q.ID)
		seen[q.ID] = true
	}
	// 10 over 3 topics: 4/3/3 before shuffling
	assert.ElementsMatch(t, []int{4, 3, 3}, []int{perTopic[1], perTopic[2], perTopic[3]})
}

func TestSelect_ExamSimulationRequiresTopics(t *testing.T) {
	s, _, _ := newTestSelector(t)
	_, err := s.Select(context.Background(), ModeExamSimulation, Params{OppositionID: 1, Count: 10})
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestSelect_Favorites(t *testing.T) {
	s, questions, _ := newTestSelector(t)

	favs := []question.Question{
		completeQuestion(1, 1),
		completeQuestion(2, 2), // filtered out by topic scope
		{ID: 3, Statement: "incomplete"},
	}
	questions.EXPECT().FindFavorites(gomock.Any(), int64(42)).Return(favs, nil)

	got, err := s.Select(context.Background(), ModeFavorites, Params{
		UserID:       42,
		OppositionID: 1,
		TopicIDs:     []int64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, questionIDs(got))
}

func TestSelect_StreakLoadsWholeScope(t *testing.T) {
	s, questions, _ := newTestSelector(t)

	var scope []question.Question
	for id := int64(1); id <= 40; id++ {
		scope = append(scope, completeQuestion(id, 1))
	}
	questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(scope, nil)

	got, err := s.Select(context.Background(), ModeStreak, Params{OppositionID: 1})
	require.NoError(t, err)
	assert.Len(t, got, 40, "streak mode never caps the pool")

	assert.ElementsMatch(t, questionIDs(scope), questionIDs(got))
	assert.NotEqual(t, questionIDs(scope), questionIDs(got), "pool must be shuffled once at creation")
}

func TestSelect_ConcurrentRequests(t *testing.T) {
	s, questions, _ := newTestSelector(t)

	pool := []question.Question{
		completeQuestion(1, 1),
		completeQuestion(2, 1),
		completeQuestion(3, 1),
	}
	questions.EXPECT().Find(gomock.Any(), gomock.Any()).Return(pool, nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := s.Select(context.Background(), ModeRandom, Params{Count: 2})
				assert.NoError(t, err)
				assert.Len(t, got, 2)
			}
		}()
	}
	wg.Wait()
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("exam")
	require.NoError(t, err)
	assert.Equal(t, ModeExamSimulation, m)

	_, err = ParseMode("guess")
	assert.ErrorIs(t, err, ErrInvalidScope)
}
