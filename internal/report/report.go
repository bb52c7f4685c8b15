// Package report renders practice results as markdown and converts them to
// PDF for printing or sharing.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/statistics"
)

const timeLayout = "2006-01-02 15:04"

// AttemptMarkdown renders one finished or in-progress attempt.
func AttemptMarkdown(att *attempt.Attempt, answers []attempt.AnswerRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Attempt %s\n\n", att.ID))
	b.WriteString(fmt.Sprintf("- Mode: %s\n", att.Mode))
	b.WriteString(fmt.Sprintf("- Started: %s\n", att.StartedAt.Format(timeLayout)))
	if att.FinishedAt != nil {
		b.WriteString(fmt.Sprintf("- Finished: %s\n", att.FinishedAt.Format(timeLayout)))
	} else {
		b.WriteString("- Finished: in progress\n")
	}
	b.WriteString(fmt.Sprintf("- Questions in pool: %d\n", len(att.QuestionIDs)))
	b.WriteString(fmt.Sprintf("- Correct: %d\n", att.CorrectCount))
	b.WriteString(fmt.Sprintf("- Incorrect: %d\n", att.IncorrectCount))
	if att.Mode == "streak" {
		b.WriteString(fmt.Sprintf("- Streak: %d (best %d, target %d)\n",
			att.StreakCurrent, att.StreakMax, att.StreakTarget))
	}
	if att.Score != nil {
		b.WriteString(fmt.Sprintf("- Score: %.0f / 10\n", *att.Score))
	}

	if len(answers) > 0 {
		b.WriteString("\n## Answers\n\n")
		b.WriteString("| Question | Selected | Result | Answered at |\n")
		b.WriteString("|---:|:---:|:---:|:---|\n")
		for _, rec := range answers {
			result := "wrong"
			if rec.Correct {
				result = "correct"
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
				rec.QuestionID, rec.SelectedOption, result, rec.AnsweredAt.Format(timeLayout)))
		}
	}

	return b.String()
}

// DueMarkdown renders the due-bucket partition of a question set.
func DueMarkdown(buckets statistics.DueBuckets, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Review schedule\n\n")
	b.WriteString(fmt.Sprintf("As of %s, over %d questions:\n\n", now.Format(timeLayout), buckets.Total))
	b.WriteString("| Bucket | Questions |\n")
	b.WriteString("|:---|---:|\n")
	b.WriteString(fmt.Sprintf("| Never reviewed | %d |\n", buckets.NeverReviewed))
	b.WriteString(fmt.Sprintf("| Overdue | %d |\n", buckets.Overdue))
	b.WriteString(fmt.Sprintf("| Due today | %d |\n", buckets.DueToday))
	b.WriteString(fmt.Sprintf("| Due within 7 days | %d |\n", buckets.DueWithin7Days))
	b.WriteString(fmt.Sprintf("| Due later | %d |\n", buckets.DueLater))

	return b.String()
}

// AccuracyMarkdown renders per-question accuracy over a learner's history.
func AccuracyMarkdown(rows []statistics.QuestionAccuracy) string {
	var b strings.Builder

	b.WriteString("# Accuracy by question\n\n")
	if len(rows) == 0 {
		b.WriteString("No answers recorded yet.\n")
		return b.String()
	}

	b.WriteString("| Question | Answered | Correct | Accuracy |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("| %d | %d | %d | %.1f%% |\n",
			row.QuestionID, row.Answered, row.Correct, row.Accuracy))
	}

	return b.String()
}
