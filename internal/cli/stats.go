package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/opodrill/opodrill/internal/question"
)

// PrintStatistics writes the due buckets and the per-question accuracy of a
// user to the given writer. Not interactive.
func PrintStatistics(ctx context.Context, eng Engine, w io.Writer, userID int64, filter question.Filter) error {
	bold := color.New(color.Bold)

	buckets, err := eng.GetDueStatistics(ctx, filter)
	if err != nil {
		return fmt.Errorf("engine.GetDueStatistics() > %w", err)
	}

	_, _ = bold.Fprintln(w, "Review schedule")
	fmt.Fprintf(w, "  Never reviewed:    %d\n", buckets.NeverReviewed)
	fmt.Fprintf(w, "  Overdue:           %d\n", buckets.Overdue)
	fmt.Fprintf(w, "  Due today:         %d\n", buckets.DueToday)
	fmt.Fprintf(w, "  Due within 7 days: %d\n", buckets.DueWithin7Days)
	fmt.Fprintf(w, "  Due later:         %d\n", buckets.DueLater)
	fmt.Fprintf(w, "  Total:             %d\n\n", buckets.Total)

	rows, err := eng.GetUserAccuracy(ctx, userID)
	if err != nil {
		return fmt.Errorf("engine.GetUserAccuracy() > %w", err)
	}

	_, _ = bold.Fprintln(w, "Accuracy by question")
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No answers recorded yet.")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  question %-6d %d/%d correct (%.1f%%)\n",
			row.QuestionID, row.Correct, row.Answered, row.Accuracy)
	}
	return nil
}
