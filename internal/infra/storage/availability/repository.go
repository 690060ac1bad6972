package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
)

const tableRules = "availability_rules"

var ruleColumns = []string{
	"id",
	"mentor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных правил доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое правило
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableRules).
		Columns("mentor_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(rule.MentorID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return rule, nil
}

// GetByID получает правило по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(ruleColumns...).
		From(tableRules).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %w", ErrScanRow, err)
	}
	return rule, nil
}

// GetByMentor получает правила ментора, упорядоченные по дню недели и времени начала
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений была последовательной
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64, filter domain.AvailabilityFilter) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(ruleColumns...).
		From(tableRules).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("day_of_week ASC", "start_time ASC", "id ASC")

	if filter.DayOfWeek != nil {
		builder = builder.Where(squirrel.Eq{"day_of_week": *filter.DayOfWeek})
	}
	if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMentor - scan rule: %w", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - rows iteration: %w", ErrScanRow, err)
	}

	return rules, nil
}

// SetActive включает или выключает правило (мягкая деактивация)
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableRules).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetActive", query, args)
}

// Delete удаляет правило
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableRules).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&rule.ID,
		&rule.MentorID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return &rule, nil
}
