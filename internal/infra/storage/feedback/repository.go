package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/pgerrors"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
)

const tableFeedback = "session_feedback"

var feedbackColumns = []string{"id", "booking_id", "mentee_id", "mentor_id", "rating", "comment", "created_at"}

// Repository репозиторий оценок сессий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет оценку. Одна оценка на бронирование.
func (r *Repository) Create(ctx context.Context, f *domain.SessionFeedback) (*domain.SessionFeedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableFeedback).
		Columns("booking_id", "mentee_id", "mentor_id", "rating", "comment").
		Values(f.BookingID, f.MenteeID, f.MentorID, f.Rating, f.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrFeedbackExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	return f, nil
}

// GetRatingCounts количество оценок ментора по звездам
func (r *Repository) GetRatingCounts(ctx context.Context, mentorID int64) (map[int]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "COUNT(*)").
		From(tableFeedback).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		GroupBy("rating").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRatingCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRatingCounts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("%w: GetRatingCounts - scan row: %w", ErrScanRow, err)
		}
		counts[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRatingCounts - rows iteration: %w", ErrScanRow, err)
	}

	return counts, nil
}

// GetByMentor оценки ментора, новые первыми
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) ([]*domain.SessionFeedback, error) {
	return r.list(ctx, "GetByMentor", squirrel.Eq{"mentor_id": mentorID})
}

// GetByMentee оценки, оставленные менти
func (r *Repository) GetByMentee(ctx context.Context, menteeID int64) ([]*domain.SessionFeedback, error) {
	return r.list(ctx, "GetByMentee", squirrel.Eq{"mentee_id": menteeID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.SessionFeedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(feedbackColumns...).
		From(tableFeedback).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.SessionFeedback, 0)
	for rows.Next() {
		var f domain.SessionFeedback
		var createdAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.BookingID, &f.MenteeID, &f.MentorID, &f.Rating, &f.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		f.CreatedAt = createdAt.Time
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return result, nil
}
