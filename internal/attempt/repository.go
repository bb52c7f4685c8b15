package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opodrill/opodrill/internal/database"
)

// ErrNotFound is returned when an attempt id does not exist.
var ErrNotFound = errors.New("attempt not found")

// UpdateFunc is the state transition applied under the per-attempt lock.
// It may mutate the attempt's counters and return an answer record to
// upsert (nil when no answer changes). Returning an error aborts the
// transaction without persisting anything.
type UpdateFunc func(a *Attempt, answers []AnswerRecord) (*AnswerRecord, error)

// Repository defines operations for managing attempts and answer records.
//
//go:generate mockgen -source=repository.go -destination=../mocks/attempt/mock_repository.go -package=mock_attempt Repository
type Repository interface {
	Create(ctx context.Context, a *Attempt) error
	Get(ctx context.Context, id string) (*Attempt, error)
	FindAnswers(ctx context.Context, attemptID string) ([]AnswerRecord, error)
	FindUserHistory(ctx context.Context, userID int64, questionIDs []int64) ([]AnswerRecord, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*Attempt, error)
}

// DBRepository implements Repository using MySQL. Update serializes
// concurrent submissions for the same attempt with a row lock, which is what
// makes the engine's subtract-then-add answer accounting safe.
type DBRepository struct {
	db *sqlx.DB
}

var _ Repository = (*DBRepository)(nil)

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts the attempt and its frozen pool in one transaction.
func (r *DBRepository) Create(ctx context.Context, a *Attempt) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attempts
				(id, user_id, mode, streak_target, streak_current, streak_max,
				 correct_count, incorrect_count, started_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.UserID, a.Mode, a.StreakTarget, a.StreakCurrent, a.StreakMax,
			a.CorrectCount, a.IncorrectCount, a.StartedAt); err != nil {
			return fmt.Errorf("tx.ExecContext(insert attempt) > %w", err)
		}
		for pos, qid := range a.QuestionIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO attempt_questions (attempt_id, position, question_id) VALUES (?, ?, ?)",
				a.ID, pos, qid); err != nil {
				return fmt.Errorf("tx.ExecContext(insert attempt question) > %w", err)
			}
		}
		return nil
	})
}

// Get returns the attempt with its pool loaded in creation order.
func (r *DBRepository) Get(ctx context.Context, id string) (*Attempt, error) {
	var a Attempt
	err := r.db.GetContext(ctx, &a, "SELECT * FROM attempts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(attempt) > %w", err)
	}
	if err := r.db.SelectContext(ctx, &a.QuestionIDs,
		"SELECT question_id FROM attempt_questions WHERE attempt_id = ? ORDER BY position",
		id); err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempt questions) > %w", err)
	}
	return &a, nil
}

// FindAnswers returns the logical answer records of an attempt.
func (r *DBRepository) FindAnswers(ctx context.Context, attemptID string) ([]AnswerRecord, error) {
	var answers []AnswerRecord
	if err := r.db.SelectContext(ctx, &answers,
		"SELECT * FROM attempt_answers WHERE attempt_id = ? ORDER BY answered_at, question_id",
		attemptID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempt answers) > %w", err)
	}
	return answers, nil
}

// FindUserHistory returns the user's answer records across all attempts,
// optionally restricted to the given question ids, oldest first.
func (r *DBRepository) FindUserHistory(ctx context.Context, userID int64, questionIDs []int64) ([]AnswerRecord, error) {
	query := `SELECT ans.* FROM attempt_answers ans
		JOIN attempts att ON att.id = ans.attempt_id
		WHERE att.user_id = ?`
	args := []interface{}{userID}
	if len(questionIDs) > 0 {
		query += " AND ans.question_id IN (?)"
		args = append(args, questionIDs)
	}
	query += " ORDER BY ans.answered_at, ans.question_id"

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(answer history) > %w", err)
	}

	var answers []AnswerRecord
	if err := r.db.SelectContext(ctx, &answers, query, expanded...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(answer history) > %w", err)
	}
	return answers, nil
}

// Update applies fn to the attempt under a row lock and persists the result.
// The commit is atomic: either the counters and the answer record are both
// written or neither is.
func (r *DBRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*Attempt, error) {
	var updated *Attempt
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var a Attempt
		err := tx.GetContext(ctx, &a, "SELECT * FROM attempts WHERE id = ? FOR UPDATE", id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("tx.GetContext(attempt for update) > %w", err)
		}
		if err := tx.SelectContext(ctx, &a.QuestionIDs,
			"SELECT question_id FROM attempt_questions WHERE attempt_id = ? ORDER BY position",
			id); err != nil {
			return fmt.Errorf("tx.SelectContext(attempt questions) > %w", err)
		}

		var answers []AnswerRecord
		if err := tx.SelectContext(ctx, &answers,
			"SELECT * FROM attempt_answers WHERE attempt_id = ? ORDER BY answered_at, question_id",
			id); err != nil {
			return fmt.Errorf("tx.SelectContext(attempt answers) > %w", err)
		}

		record, err := fn(&a, answers)
		if err != nil {
			return err
		}

		if record != nil {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO attempt_answers
					(attempt_id, question_id, selected_option, correct, answered_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON DUPLICATE KEY UPDATE
					selected_option = VALUES(selected_option),
					correct = VALUES(correct),
					updated_at = VALUES(updated_at)`,
				record.AttemptID, record.QuestionID, record.SelectedOption,
				record.Correct, record.AnsweredAt, record.UpdatedAt); err != nil {
				return fmt.Errorf("tx.ExecContext(upsert answer) > %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE attempts
			SET streak_current = ?, streak_max = ?, correct_count = ?, incorrect_count = ?,
				score = ?, finished_at = ?
			WHERE id = ?`,
			a.StreakCurrent, a.StreakMax, a.CorrectCount, a.IncorrectCount,
			a.Score, a.FinishedAt, a.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(update attempt) > %w", err)
		}

		updated = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
