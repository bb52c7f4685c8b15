package attempt

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attemptColumns = []string{
	"id", "user_id", "mode", "streak_target", "streak_current", "streak_max",
	"correct_count", "incorrect_count", "score", "started_at", "finished_at",
}

var answerColumns = []string{
	"attempt_id", "question_id", "selected_option", "correct", "answered_at", "updated_at",
}

func newMockRepo(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_Create(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("inserts attempt and pool atomically", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO attempts").
			WithArgs("att-1", int64(7), "streak", 10, 0, 0, 0, 0, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO attempt_questions").
			WithArgs("att-1", 0, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO attempt_questions").
			WithArgs("att-1", 1, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		att := &Attempt{
			ID:           "att-1",
			UserID:       7,
			Mode:         "streak",
			QuestionIDs:  []int64{3, 1},
			StreakTarget: 10,
			StartedAt:    now,
		}
		require.NoError(t, repo.Create(context.Background(), att))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on pool insert failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO attempts").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO attempt_questions").
			WillReturnError(fmt.Errorf("duplicate entry"))
		mock.ExpectRollback()

		att := &Attempt{ID: "att-1", UserID: 7, Mode: "random", QuestionIDs: []int64{1}, StartedAt: now}
		assert.Error(t, repo.Create(context.Background(), att))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBRepository_Get(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("loads attempt with ordered pool", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT \\* FROM attempts WHERE id = \\?").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(attemptColumns).
				AddRow("att-1", 7, "streak", 10, 2, 4, 6, 2, nil, now, nil))
		mock.ExpectQuery("SELECT question_id FROM attempt_questions WHERE attempt_id = \\? ORDER BY position").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow(3).AddRow(1).AddRow(2))

		got, err := repo.Get(context.Background(), "att-1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.UserID)
		assert.Equal(t, 2, got.StreakCurrent)
		assert.Equal(t, []int64{3, 1, 2}, got.QuestionIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT \\* FROM attempts WHERE id = \\?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(attemptColumns))

		_, err := repo.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDBRepository_FindAnswers(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT \\* FROM attempt_answers WHERE attempt_id = \\?").
		WithArgs("att-1").
		WillReturnRows(sqlmock.NewRows(answerColumns).
			AddRow("att-1", 1, "B", true, now, now).
			AddRow("att-1", 2, "A", false, now.Add(time.Minute), now.Add(time.Minute)))

	got, err := repo.FindAnswers(context.Background(), "att-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].QuestionID)
	assert.True(t, got[0].Correct)
	assert.False(t, got[1].Correct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindUserHistory(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("restricted to question ids", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT ans\\.\\* FROM attempt_answers ans").
			WithArgs(int64(7), int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows(answerColumns).
				AddRow("att-1", 1, "B", true, now, now))

		got, err := repo.FindUserHistory(context.Background(), 7, []int64{1, 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whole history", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT ans\\.\\* FROM attempt_answers ans").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(answerColumns))

		got, err := repo.FindUserHistory(context.Background(), 7, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBRepository_Update(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("locks row, applies transition and commits", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM attempts WHERE id = \\? FOR UPDATE").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(attemptColumns).
				AddRow("att-1", 7, "streak", 3, 1, 1, 1, 0, nil, now, nil))
		mock.ExpectQuery("SELECT question_id FROM attempt_questions").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow(1).AddRow(2))
		mock.ExpectQuery("SELECT \\* FROM attempt_answers WHERE attempt_id = \\?").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(answerColumns).
				AddRow("att-1", 1, "B", true, now, now))
		mock.ExpectExec("INSERT INTO attempt_answers").
			WithArgs("att-1", int64(2), "C", true, now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE attempts").
			WithArgs(2, 2, 2, 0, nil, nil, "att-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := repo.Update(context.Background(), "att-1", func(a *Attempt, answers []AnswerRecord) (*AnswerRecord, error) {
			require.Equal(t, []int64{1, 2}, a.QuestionIDs)
			require.Len(t, answers, 1)

			a.StreakCurrent = 2
			a.StreakMax = 2
			a.CorrectCount = 2
			return &AnswerRecord{
				AttemptID: "att-1", QuestionID: 2, SelectedOption: "C",
				Correct: true, AnsweredAt: now, UpdatedAt: now,
			}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.StreakCurrent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("transition error rolls back", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM attempts WHERE id = \\? FOR UPDATE").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(attemptColumns).
				AddRow("att-1", 7, "streak", 3, 0, 0, 0, 0, nil, now, nil))
		mock.ExpectQuery("SELECT question_id FROM attempt_questions").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow(1))
		mock.ExpectQuery("SELECT \\* FROM attempt_answers WHERE attempt_id = \\?").
			WithArgs("att-1").
			WillReturnRows(sqlmock.NewRows(answerColumns))
		mock.ExpectRollback()

		wantErr := errors.New("rejected")
		_, err := repo.Update(context.Background(), "att-1", func(a *Attempt, answers []AnswerRecord) (*AnswerRecord, error) {
			return nil, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM attempts WHERE id = \\? FOR UPDATE").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(attemptColumns))
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), "missing", func(a *Attempt, answers []AnswerRecord) (*AnswerRecord, error) {
			t.Fatal("transition must not run")
			return nil, nil
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
