// Package statistics derives read-only metrics from questions' review
// schedules and a learner's answer history. Everything here is a pure fold
// and safe to recompute at any time.
package statistics

import (
	"sort"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/review"
)

// DueBuckets partitions a set of questions by their position on the review
// schedule. The five bucket counts always sum to Total.
type DueBuckets struct {
	Total          int `json:"total"`
	NeverReviewed  int `json:"never_reviewed"`
	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	DueWithin7Days int `json:"due_within_7_days"`
	DueLater       int `json:"due_later"`
}

// CountDueBuckets classifies every question into exactly one bucket.
func CountDueBuckets(questions []question.Question, now time.Time) DueBuckets {
	buckets := DueBuckets{Total: len(questions)}
	for _, q := range questions {
		switch review.Classify(q.State, now) {
		case review.BucketNeverReviewed:
			buckets.NeverReviewed++
		case review.BucketOverdue:
			buckets.Overdue++
		case review.BucketDueToday:
			buckets.DueToday++
		case review.BucketDueWithin7Days:
			buckets.DueWithin7Days++
		case review.BucketDueLater:
			buckets.DueLater++
		}
	}
	return buckets
}

// QuestionHistory summarizes a learner's answers to one question.
type QuestionHistory struct {
	Answered       int
	Correct        int
	Errors         int
	LastCorrect    bool
	LastAnsweredAt time.Time
}

// HistoryByQuestion folds answer records into per-question tallies.
// Records must be ordered oldest first so LastCorrect reflects the most
// recent answer.
func HistoryByQuestion(records []attempt.AnswerRecord) map[int64]QuestionHistory {
	byQuestion := make(map[int64]QuestionHistory)
	for _, rec := range records {
		h := byQuestion[rec.QuestionID]
		h.Answered++
		if rec.Correct {
			h.Correct++
		} else {
			h.Errors++
		}
		h.LastCorrect = rec.Correct
		h.LastAnsweredAt = rec.AnsweredAt
		byQuestion[rec.QuestionID] = h
	}
	return byQuestion
}

// QuestionAccuracy is a per-question accuracy row for reports.
type QuestionAccuracy struct {
	QuestionID int64
	Answered   int
	Correct    int
	Accuracy   float64 // percentage, 0 when never answered
}

// AccuracyRows flattens an answer history into accuracy rows sorted by
// question id.
func AccuracyRows(records []attempt.AnswerRecord) []QuestionAccuracy {
	byQuestion := HistoryByQuestion(records)

	rows := make([]QuestionAccuracy, 0, len(byQuestion))
	for id, h := range byQuestion {
		row := QuestionAccuracy{QuestionID: id, Answered: h.Answered, Correct: h.Correct}
		if h.Answered > 0 {
			row.Accuracy = float64(h.Correct) / float64(h.Answered) * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].QuestionID < rows[j].QuestionID })
	return rows
}
