package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/pgerrors"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
)

const tablePayments = "payments"

var paymentColumns = []string{
	"id",
	"booking_id",
	"mentee_id",
	"mentor_id",
	"payment_intent_id",
	"provider_event_id",
	"amount",
	"currency",
	"status",
	"platform_fee",
	"mentor_payout",
	"commission_paid",
	"payout_released",
	"payout_released_at",
	"webhook_processed",
	"succeeded_at",
	"failed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж
// Уникальность payment_intent_id, provider_event_id и одного проведенного платежа на бронирование
// обеспечивается индексами, нарушение - ErrDuplicatePayment
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tablePayments).
		Columns(
			"booking_id",
			"mentee_id",
			"mentor_id",
			"payment_intent_id",
			"provider_event_id",
			"amount",
			"currency",
			"status",
			"platform_fee",
			"mentor_payout",
			"commission_paid",
			"payout_released",
			"payout_released_at",
			"webhook_processed",
			"succeeded_at",
			"failed_at",
		).
		Values(
			p.BookingID,
			p.MenteeID,
			p.MentorID,
			p.PaymentIntentID,
			p.ProviderEventID,
			p.Amount,
			p.Currency,
			p.Status,
			p.PlatformFee,
			p.MentorPayout,
			p.CommissionPaid,
			p.PayoutReleased,
			p.PayoutReleasedAt,
			p.WebhookProcessed,
			p.SucceededAt,
			p.FailedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: constraint %s", ErrDuplicatePayment, pgerrors.ConstraintName(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	builder := psqlbuilder.Select(paymentColumns...).
		From(tablePayments).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, "GetByID", builder)
}

// GetByIntentID получает платеж по payment intent (FOR UPDATE внутри транзакции)
func (r *Repository) GetByIntentID(ctx context.Context, paymentIntentID string) (*domain.Payment, error) {
	builder := psqlbuilder.Select(paymentColumns...).
		From(tablePayments).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID})

	return r.getOne(ctx, "GetByIntentID", builder)
}

// GetSettledByBooking получает проведенный платеж бронирования (FOR UPDATE внутри транзакции)
func (r *Repository) GetSettledByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	builder := psqlbuilder.Select(paymentColumns...).
		From(tablePayments).
		Where(squirrel.Eq{"booking_id": bookingID, "status": domain.PaymentSucceeded})

	return r.getOne(ctx, "GetSettledByBooking", builder)
}

// GetByParticipant история платежей пользователя как менти или как ментора, новые первыми
func (r *Repository) GetByParticipant(ctx context.Context, userID int64, role domain.Role) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column := "mentee_id"
	if role == domain.RoleMentor {
		column = "mentor_id"
	}

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From(tablePayments).
		Where(squirrel.Eq{column: userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByParticipant - scan payment: %w", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - rows iteration: %w", ErrScanRow, err)
	}

	return payments, nil
}

// Update сохраняет состояние платежа после проведения, отказа или выплаты
func (r *Repository) Update(ctx context.Context, p *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tablePayments).
		Set("provider_event_id", p.ProviderEventID).
		Set("amount", p.Amount).
		Set("currency", p.Currency).
		Set("status", p.Status).
		Set("platform_fee", p.PlatformFee).
		Set("mentor_payout", p.MentorPayout).
		Set("commission_paid", p.CommissionPaid).
		Set("payout_released", p.PayoutReleased).
		Set("payout_released_at", p.PayoutReleasedAt).
		Set("webhook_processed", p.WebhookProcessed).
		Set("succeeded_at", p.SucceededAt).
		Set("failed_at", p.FailedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: constraint %s", ErrDuplicatePayment, pgerrors.ConstraintName(err))
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, op, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.MenteeID,
		&p.MentorID,
		&p.PaymentIntentID,
		&p.ProviderEventID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.PlatformFee,
		&p.MentorPayout,
		&p.CommissionPaid,
		&p.PayoutReleased,
		&p.PayoutReleasedAt,
		&p.WebhookProcessed,
		&p.SucceededAt,
		&p.FailedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
