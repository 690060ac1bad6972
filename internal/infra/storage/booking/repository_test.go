package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/pgerrors"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func txContext(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), tx)
}

var sessionDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newBooking() *domain.Booking {
	return &domain.Booking{
		MenteeID:        1,
		MentorID:        2,
		SessionDate:     sessionDate,
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("11:00"),
		DurationMinutes: 60,
		Amount:          types.NewMoneyFromMinor(5000),
		Status:          domain.StatusRequested,
		PaymentStatus:   domain.BookingPaymentPending,
		MenteeConsent:   domain.ConsentUnset,
	}
}

func TestLockMentorDate_RequiresTransaction(t *testing.T) {
	db, _ := newMock(t)

	err := NewRepository(db).LockMentorDate(context.Background(), 2, sessionDate)
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestLockMentorDate_KeyUsesFullMentorID(t *testing.T) {
	db, mock := newMock(t)
	ctx := txContext(t, db, mock)

	// 2^32 + 2 и 2 совпали бы при усечении до int4
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")).
		WithArgs("booking:4294967298:2024-06-10").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewRepository(db).LockMentorDate(ctx, 4294967298, sessionDate.Add(15*time.Hour)))
	assert.NoError(t, mock.ExpectationsWereMet())

	_, small := lockMentorDateQuery(2, sessionDate)
	_, large := lockMentorDateQuery(4294967298, sessionDate)
	assert.NotEqual(t, small, large)
}

func TestCreate_DriverErrors(t *testing.T) {
	tests := []struct {
		name      string
		driverErr error
		check     func(t *testing.T, err error)
	}{
		{
			name:      "exclusion violation is a slot conflict",
			driverErr: &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSlotConflict)
			},
		},
		{
			name:      "serialization failure keeps the driver error",
			driverErr: &pq.Error{Code: "40001"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrExecQuery)
				assert.True(t, pgerrors.IsSerializationFailure(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectQuery(`INSERT INTO bookings \(mentee_id,.*\) VALUES \(.*\) RETURNING id, created_at, updated_at`).
				WillReturnError(tt.driverErr)

			_, err := NewRepository(db).Create(context.Background(), newBooking())

			require.Error(t, err)
			tt.check(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO bookings .* RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), created, created))

	booking, err := NewRepository(db).Create(context.Background(), newBooking())

	require.NoError(t, err)
	assert.Equal(t, int64(10), booking.ID)
	assert.Equal(t, created, booking.CreatedAt)
}

func TestGetByID_ForUpdateOnlyInTransaction(t *testing.T) {
	t.Run("outside transaction", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT id, mentee_id, .* FROM bookings WHERE id = \$1$`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewRepository(db).GetByID(context.Background(), 7)

		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside transaction", func(t *testing.T) {
		db, mock := newMock(t)
		ctx := txContext(t, db, mock)
		mock.ExpectQuery(`SELECT id, mentee_id, .* FROM bookings WHERE id = \$1 FOR UPDATE$`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewRepository(db).GetByID(ctx, 7)

		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
