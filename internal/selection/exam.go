package selection

import (
	"context"
	"fmt"

	"github.com/opodrill/opodrill/internal/question"
)

// selectExamSimulation draws a balanced exam: the requested total is split
// into per-topic quotas, each topic contributes a random sample of its own
// questions, and the combined paper is shuffled globally.
func (s *Selector) selectExamSimulation(ctx context.Context, p Params) ([]question.Question, error) {
	if len(p.TopicIDs) == 0 {
		return nil, fmt.Errorf("%w: exam simulation requires at least one topic", ErrInvalidScope)
	}
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

	byTopic := make(map[int64][]question.Question, len(p.TopicIDs))
	for _, q := range scope {
		byTopic[q.TopicID] = append(byTopic[q.TopicID], q)
	}

	available := make(map[int64]int, len(byTopic))
	for topicID, questions := range byTopic {
		available[topicID] = len(questions)
	}

	quotas := topicQuotas(available, p.TopicIDs, p.Count)

	exam := make([]question.Question, 0, p.Count)
	for _, topicID := range p.TopicIDs {
		pool := byTopic[topicID]
		s.shuffleQuestions(pool)
		exam = append(exam, pool[:quotas[topicID]]...)
	}

	s.shuffleQuestions(exam)
	return exam, nil
}

// topicQuotas splits the target across topics: integer division with the
// remainder handed to the leading topics one unit each, every quota capped
// by its topic's availability. Capping shortfall is redistributed round-robin
// to topics with spare capacity; after 2n passes we stop even if short so a
// pathological distribution cannot loop forever.
func topicQuotas(available map[int64]int, topicOrder []int64, target int) map[int64]int {
	totalAvailable := 0
	for _, topicID := range topicOrder {
		totalAvailable += available[topicID]
	}
	if target > totalAvailable {
		target = totalAvailable
	}

	n := len(topicOrder)
	quotas := make(map[int64]int, n)
	if n == 0 || target == 0 {
		return quotas
	}

	base := target / n
	remainder := target % n

	assigned := 0
	for i, topicID := range topicOrder {
		quota := base
		if i < remainder {
			quota++
		}
		if quota > available[topicID] {
			quota = available[topicID]
		}
		quotas[topicID] = quota
		assigned += quota
	}

	for pass := 0; pass < 2*n && assigned < target; pass++ {
		for _, topicID := range topicOrder {
			if assigned == target {
				break
			}
			if quotas[topicID] < available[topicID] {
				quotas[topicID]++
				assigned++
			}
		}
	}

	return quotas
}
