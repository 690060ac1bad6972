package blockeddate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/pgerrors"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
)

const tableBlockedDates = "blocked_dates"

var blockedDateColumns = []string{"id", "mentor_id", "blocked_date", "reason", "created_at"}

// Repository репозиторий заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create блокирует дату. Повторная блокировка той же даты - ErrAlreadyBlocked.
func (r *Repository) Create(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBlockedDates).
		Columns("mentor_id", "blocked_date", "reason").
		Values(blocked.MentorID, domain.TruncateToDate(blocked.Date), blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrAlreadyBlocked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time
	return blocked, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error) {
	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From(tableBlockedDates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByID", query, args)
}

// GetByMentorAndDate получает блокировку ментора на конкретную дату
func (r *Repository) GetByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) (*domain.BlockedDate, error) {
	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From(tableBlockedDates).
		Where(squirrel.Eq{"mentor_id": mentorID, "blocked_date": domain.TruncateToDate(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByMentorAndDate", query, args)
}

// GetByMentorInRange получает блокировки ментора за период (включительно)
// Если from/to nil - без ограничения
func (r *Repository) GetByMentorInRange(ctx context.Context, mentorID int64, from, to *time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(blockedDateColumns...).
		From(tableBlockedDates).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("blocked_date ASC")

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"blocked_date": domain.TruncateToDate(*from)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"blocked_date": domain.TruncateToDate(*to)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentorInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		blocked, err := scanBlockedDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMentorInRange - scan: %w", ErrScanRow, err)
		}
		result = append(result, blocked)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentorInRange - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBlockedDates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocked, err := scanBlockedDate(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}
	return blocked, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlockedDate(row rowScanner) (*domain.BlockedDate, error) {
	var blocked domain.BlockedDate
	var createdAt sql.NullTime

	if err := row.Scan(&blocked.ID, &blocked.MentorID, &blocked.Date, &blocked.Reason, &createdAt); err != nil {
		return nil, err
	}

	blocked.CreatedAt = createdAt.Time
	return &blocked, nil
}
