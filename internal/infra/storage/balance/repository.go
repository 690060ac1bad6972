package balance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

const tableBalances = "mentor_balances"

// Repository репозиторий балансов менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentor получает баланс ментора
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) (*domain.MentorBalance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"mentor_id",
		"total_earned",
		"available_balance",
		"pending_balance",
		"withdrawn",
		"updated_at",
	).
		From(tableBalances).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.MentorBalance
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.MentorID,
		&b.TotalEarned,
		&b.AvailableBalance,
		&b.PendingBalance,
		&b.Withdrawn,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBalanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMentor - scan balance: %w", ErrScanRow, err)
	}

	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

// CreditPending зачисляет выплату в pending и total_earned.
// Строка создается при первом зачислении; инкремент атомарный, без чтения.
func (r *Repository) CreditPending(ctx context.Context, mentorID int64, amount types.Money) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBalances).
		Columns("mentor_id", "total_earned", "available_balance", "pending_balance", "withdrawn").
		Values(mentorID, amount, types.Money(0), amount, types.Money(0)).
		Suffix(`ON CONFLICT (mentor_id) DO UPDATE SET
			pending_balance = mentor_balances.pending_balance + EXCLUDED.pending_balance,
			total_earned = mentor_balances.total_earned + EXCLUDED.total_earned,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreditPending - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreditPending - execute upsert: %w", ErrExecQuery, err)
	}
	return nil
}

// ReleasePending переносит сумму из pending в available.
// Если в pending меньше суммы, ничего не меняется и возвращается ErrInsufficientPending.
func (r *Repository) ReleasePending(ctx context.Context, mentorID int64, amount types.Money) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBalances).
		Set("pending_balance", squirrel.Expr("pending_balance - ?", amount)).
		Set("available_balance", squirrel.Expr("available_balance + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.GtOrEq{"pending_balance": amount}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleasePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleasePending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleasePending - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInsufficientPending
	}
	return nil
}
