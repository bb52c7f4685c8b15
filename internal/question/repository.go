package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/opodrill/opodrill/internal/review"
)

// ErrNotFound is returned when a question id does not exist.
var ErrNotFound = errors.New("question not found")

// Repository defines operations for managing questions.
//
//go:generate mockgen -source=repository.go -destination=../mocks/question/mock_repository.go -package=mock_question Repository
type Repository interface {
	Find(ctx context.Context, filter Filter) ([]Question, error)
	Get(ctx context.Context, id int64) (*Question, error)
	Create(ctx context.Context, q *Question) error
	SaveReviewState(ctx context.Context, id int64, state review.State) error
	FindFavorites(ctx context.Context, userID int64) ([]Question, error)
	SetFavorite(ctx context.Context, userID, questionID int64, favorite bool) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

var _ Repository = (*DBRepository)(nil)

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Find returns published questions matching the filter.
func (r *DBRepository) Find(ctx context.Context, filter Filter) ([]Question, error) {
	query := "SELECT * FROM questions WHERE published = TRUE"
	args := []interface{}{}

	if filter.OppositionID != 0 {
		query += " AND opposition_id = ?"
		args = append(args, filter.OppositionID)
	}
	if len(filter.TopicIDs) > 0 {
		query += " AND topic_id IN (?)"
		args = append(args, filter.TopicIDs)
	}
	if filter.Difficulty != 0 {
		query += " AND difficulty = ?"
		args = append(args, filter.Difficulty)
	}
	query += " ORDER BY id"

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(questions) > %w", err)
	}

	var questions []Question
	if err := r.db.SelectContext(ctx, &questions, query, expanded...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions) > %w", err)
	}
	return questions, nil
}

// Get returns a question by id.
func (r *DBRepository) Get(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := r.db.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(question) > %w", err)
	}
	return &q, nil
}

// Create inserts a new question.
func (r *DBRepository) Create(ctx context.Context, q *Question) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions
			(opposition_id, topic_id, statement, option_a, option_b, option_c, option_d,
			 correct_option, difficulty, published, ease_factor, interval_days, repetitions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.OppositionID, q.TopicID, q.Statement, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		q.CorrectOption, q.Difficulty, q.Published,
		q.EaseFactor, q.IntervalDays, q.Repetitions)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	q.ID = id
	return nil
}

// SaveReviewState persists a newly computed review state for a question.
func (r *DBRepository) SaveReviewState(ctx context.Context, id int64, state review.State) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE questions
		SET ease_factor = ?, interval_days = ?, repetitions = ?, due_at = ?, last_reviewed_at = ?
		WHERE id = ?`,
		state.EaseFactor, state.IntervalDays, state.Repetitions, state.DueAt, state.LastReviewedAt, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update review state) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindFavorites returns the published questions the user has starred.
func (r *DBRepository) FindFavorites(ctx context.Context, userID int64) ([]Question, error) {
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions,
		`SELECT q.* FROM questions q
		JOIN user_favorites f ON f.question_id = q.id
		WHERE f.user_id = ? AND q.published = TRUE
		ORDER BY q.id`,
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(favorites) > %w", err)
	}
	return questions, nil
}

// SetFavorite stars or unstars a question for the user.
func (r *DBRepository) SetFavorite(ctx context.Context, userID, questionID int64, favorite bool) error {
	if favorite {
		if _, err := r.db.ExecContext(ctx,
			"INSERT IGNORE INTO user_favorites (user_id, question_id) VALUES (?, ?)",
			userID, questionID); err != nil {
			return fmt.Errorf("db.ExecContext(insert favorite) > %w", err)
		}
		return nil
	}
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM user_favorites WHERE user_id = ? AND question_id = ?",
		userID, questionID); err != nil {
		return fmt.Errorf("db.ExecContext(delete favorite) > %w", err)
	}
	return nil
}
