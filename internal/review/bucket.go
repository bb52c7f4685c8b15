package review

import "time"

// Bucket classifies a question's position on the review schedule.
// Every state falls into exactly one bucket at any point in time.
type Bucket int

const (
	BucketNeverReviewed Bucket = iota
	BucketOverdue
	BucketDueToday
	BucketDueWithin7Days
	BucketDueLater
)

var bucketNames = map[Bucket]string{
	BucketNeverReviewed:  "never_reviewed",
	BucketOverdue:        "overdue",
	BucketDueToday:       "due_today",
	BucketDueWithin7Days: "due_within_7_days",
	BucketDueLater:       "due_later",
}

func (b Bucket) String() string {
	return bucketNames[b]
}

// Classify assigns the state to its due bucket relative to now.
// Day boundaries use the location of now.
func Classify(s State, now time.Time) Bucket {
	if s.DueAt == nil {
		return BucketNeverReviewed
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := *s.DueAt

	switch {
	case due.Before(startOfToday):
		return BucketOverdue
	case due.Before(startOfToday.AddDate(0, 0, 1)):
		return BucketDueToday
	case due.Before(startOfToday.AddDate(0, 0, 8)):
		return BucketDueWithin7Days
	default:
		return BucketDueLater
	}
}
