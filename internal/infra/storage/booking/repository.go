package booking

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

const tableBookings = "bookings"

// bookingColumns порядок колонок совпадает с порядком полей в scanBooking
var bookingColumns = []string{
	"id",
	"mentee_id",
	"mentor_id",
	"session_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"amount",
	"status",
	"payment_status",
	"payment_intent_id",
	"message",
	"meeting_link",
	"mentor_notes",
	"session_summary",
	"summary_submitted_at",
	"mentee_consent",
	"mentee_consent_at",
	"mentee_consent_note",
	"cancellation_reason",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockMentorDate берет транзакционную advisory-блокировку на пару (ментор, дата).
// Блокировка снимается при commit/rollback. Все проверки пересечений для этой пары
// после нее выполняются последовательно.
func (r *Repository) LockMentorDate(ctx context.Context, mentorID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockMentorDate", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args := lockMentorDateQuery(mentorID, date)
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockMentorDate - acquire advisory lock: %w", ErrExecQuery, err)
	}
	return nil
}

// lockMentorDateQuery ключ блокировки - 64-битный хеш строки "booking:<mentor_id>:<дата>".
// Полный BIGINT id ментора участвует в ключе без усечения до int4.
func lockMentorDateQuery(mentorID int64, date time.Time) (string, []interface{}) {
	key := fmt.Sprintf("booking:%d:%s", mentorID, domain.TruncateToDate(date).Format(domain.DateFormat))
	return "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", []interface{}{key}
}

// Create создает новое бронирование
// Если в контексте есть транзакция, запрос выполняется в ней.
// Пересечение с активным бронированием ментора отклоняется ограничением bookings_no_overlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"mentee_id",
			"mentor_id",
			"session_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"amount",
			"status",
			"payment_status",
			"message",
			"mentee_consent",
		).
		Values(
			booking.MenteeID,
			booking.MentorID,
			booking.SessionDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.Amount,
			booking.Status,
			booking.PaymentStatus,
			booking.Message,
			booking.MenteeConsent,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pgerrors.IsExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, "GetByID", builder)
}

// GetByPaymentIntentID находит бронирование по сохраненному payment intent
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"payment_intent_id": paymentIntentID})

	return r.getOne(ctx, "GetByPaymentIntentID", builder)
}

// GetActiveByMentorAndDate получает активные (requested, confirmed) бронирования ментора на дату
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error) {
	day := domain.TruncateToDate(date)
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.Eq{"session_date": day}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getMany(ctx, "GetActiveByMentorAndDate", builder)
}

// GetActiveByMentorInRange получает активные бронирования ментора за период (включительно)
func (r *Repository) GetActiveByMentorInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.GtOrEq{"session_date": domain.TruncateToDate(from)}).
		Where(squirrel.LtOrEq{"session_date": domain.TruncateToDate(to)}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("session_date ASC", "start_time ASC")

	return r.getMany(ctx, "GetActiveByMentorInRange", builder)
}

// GetActiveByMentorFrom получает активные бронирования ментора начиная с даты
func (r *Repository) GetActiveByMentorFrom(ctx context.Context, mentorID int64, from time.Time) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"mentor_id": mentorID}).
		Where(squirrel.GtOrEq{"session_date": domain.TruncateToDate(from)}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("session_date ASC", "start_time ASC")

	return r.getMany(ctx, "GetActiveByMentorFrom", builder)
}

// GetByParticipant получает бронирования пользователя как менти или как ментора
// Опционально фильтрует по статусу
func (r *Repository) GetByParticipant(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	column := "mentee_id"
	if filter.Role == domain.RoleMentor {
		column = "mentor_id"
	}

	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{column: filter.UserID}).
		OrderBy("session_date DESC", "start_time DESC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return r.getMany(ctx, "GetByParticipant", builder)
}

// Update сохраняет изменяемые поля бронирования
// Поля меняются только через методы domain.Booking, репозиторий записывает результат целиком
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", booking.Status).
		Set("payment_status", booking.PaymentStatus).
		Set("payment_intent_id", booking.PaymentIntentID).
		Set("meeting_link", booking.MeetingLink).
		Set("mentor_notes", booking.MentorNotes).
		Set("session_summary", booking.SessionSummary).
		Set("summary_submitted_at", booking.SummarySubmittedAt).
		Set("mentee_consent", booking.MenteeConsent).
		Set("mentee_consent_at", booking.MenteeConsentAt).
		Set("mentee_consent_note", booking.MenteeConsentNote).
		Set("cancellation_reason", booking.CancellationReason).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("completed_at", booking.CompletedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrDuplicatePaymentIntent
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// getOne выполняет запрос одной строки. Внутри транзакции добавляет FOR UPDATE.
func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

func (r *Repository) getMany(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.MenteeID,
		&booking.MentorID,
		&booking.SessionDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Amount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentIntentID,
		&booking.Message,
		&booking.MeetingLink,
		&booking.MentorNotes,
		&booking.SessionSummary,
		&booking.SummarySubmittedAt,
		&booking.MenteeConsent,
		&booking.MenteeConsentAt,
		&booking.MenteeConsentNote,
		&booking.CancellationReason,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
