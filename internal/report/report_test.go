package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/statistics"
)

func TestAttemptMarkdown(t *testing.T) {
	started := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	finished := started.Add(20 * time.Minute)
	score := 8.0

	att := &attempt.Attempt{
		ID:             "att-1",
		Mode:           "streak",
		QuestionIDs:    []int64{1, 2, 3},
		StreakTarget:   3,
		StreakCurrent:  3,
		StreakMax:      3,
		CorrectCount:   5,
		IncorrectCount: 1,
		Score:          &score,
		StartedAt:      started,
		FinishedAt:     &finished,
	}
	answers := []attempt.AnswerRecord{
		{QuestionID: 1, SelectedOption: "B", Correct: true, AnsweredAt: started},
		{QuestionID: 2, SelectedOption: "A", Correct: false, AnsweredAt: started.Add(time.Minute)},
	}

	md := AttemptMarkdown(att, answers)

	assert.Contains(t, md, "# Attempt att-1")
	assert.Contains(t, md, "- Mode: streak")
	assert.Contains(t, md, "- Score: 8 / 10")
	assert.Contains(t, md, "- Streak: 3 (best 3, target 3)")
	assert.Contains(t, md, "| 1 | B | correct |")
	assert.Contains(t, md, "| 2 | A | wrong |")
}

func TestAttemptMarkdown_InProgress(t *testing.T) {
	att := &attempt.Attempt{
		ID:        "att-2",
		Mode:      "random",
		StartedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}

	md := AttemptMarkdown(att, nil)
	assert.Contains(t, md, "- Finished: in progress")
	assert.NotContains(t, md, "- Score:")
	assert.NotContains(t, md, "- Streak:")
	assert.NotContains(t, md, "## Answers")
}

func TestDueMarkdown(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	md := DueMarkdown(statistics.DueBuckets{
		Total:          10,
		NeverReviewed:  4,
		Overdue:        2,
		DueToday:       1,
		DueWithin7Days: 2,
		DueLater:       1,
	}, now)

	assert.Contains(t, md, "over 10 questions")
	assert.Contains(t, md, "| Never reviewed | 4 |")
	assert.Contains(t, md, "| Overdue | 2 |")
	assert.Contains(t, md, "| Due later | 1 |")
}

func TestAccuracyMarkdown(t *testing.T) {
	md := AccuracyMarkdown([]statistics.QuestionAccuracy{
		{QuestionID: 1, Answered: 4, Correct: 3, Accuracy: 75},
		{QuestionID: 2, Answered: 2, Correct: 2, Accuracy: 100},
	})
	assert.Contains(t, md, "| 1 | 4 | 3 | 75.0% |")
	assert.Contains(t, md, "| 2 | 2 | 2 | 100.0% |")

	empty := AccuracyMarkdown(nil)
	assert.Contains(t, empty, "No answers recorded yet.")
}

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name       string
		setupFile  func(t *testing.T) string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name:       "invalid extension",
			setupFile:  func(t *testing.T) string { return "report.txt" },
			wantErr:    true,
			wantErrMsg: "input file must have .md extension",
		},
		{
			name:       "file not found",
			setupFile:  func(t *testing.T) string { return "nonexistent.md" },
			wantErr:    true,
			wantErrMsg: "os.ReadFile",
		},
		{
			name: "successful conversion",
			setupFile: func(t *testing.T) string {
				mdPath := filepath.Join(t.TempDir(), "report.md")
				require.NoError(t, os.WriteFile(mdPath, []byte("# Report\n\nSome content.\n"), 0o644))
				return mdPath
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, err := ConvertMarkdownToPDF(tt.setupFile(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			_, err = os.Stat(pdfPath)
			assert.NoError(t, err, "PDF file should be created")
		})
	}
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewWriter(dir)

	pdfPath, err := w.Write("attempt-att-1", "# Attempt att-1\n\ncontent\n")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "attempt-att-1.md"))
	assert.FileExists(t, pdfPath)
}
