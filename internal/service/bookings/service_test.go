package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]domain.Booking
	filters  []domain.BookingsFilter
	updates  int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookingRepo) GetByParticipant(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filters = append(f.filters, filter)
	var result []*domain.Booking
	for _, b := range f.bookings {
		b := b
		if filter.Role == domain.RoleMentor && b.MentorID != filter.UserID {
			continue
		}
		if filter.Role == domain.RoleMentee && b.MenteeID != filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, &b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	f.updates++
	f.bookings[b.ID] = *b
	return nil
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	mentee   = domain.Actor{UserID: 1, Role: domain.RoleMentee}
	mentor   = domain.Actor{UserID: 2, Role: domain.RoleMentor}
	stranger = domain.Actor{UserID: 3, Role: domain.RoleMentee}
	now      = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
)

func newBooking(id int64, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:              id,
		MenteeID:        mentee.UserID,
		MentorID:        mentor.UserID,
		SessionDate:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("10:00"),
		EndTime:         types.MustTimeString("11:00"),
		DurationMinutes: 60,
		Amount:          types.NewMoneyFromMinor(5000),
		Status:          status,
		PaymentStatus:   domain.BookingPaymentPending,
		MenteeConsent:   domain.ConsentUnset,
	}
}

func newService(bookings ...domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: map[int64]domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	svc := NewService(repo, passThroughTx{}, logger.NewNop())
	svc.timeProvider = fixedTime{now: now}
	return svc, repo
}

func TestGetByID_ParticipantsOnly(t *testing.T) {
	svc, _ := newService(newBooking(1, domain.StatusRequested))

	resp, err := svc.GetByID(context.Background(), mentee, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", resp.SessionDate)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "unset", resp.MenteeConsent)

	_, err = svc.GetByID(context.Background(), mentor, 1)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), stranger, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), mentee, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetMyBookings_UsesActorRole(t *testing.T) {
	svc, repo := newService(newBooking(1, domain.StatusRequested), newBooking(2, domain.StatusCancelled))

	resp, err := svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{Actor: mentor})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, domain.RoleMentor, repo.filters[0].Role)

	resp, err = svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{Actor: mentee, Status: ptr.Ptr("Cancelled")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{Actor: mentee, Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMyBookings_EmptyListIsNotNil(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{Actor: stranger})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		actor   domain.Actor
		to      string
		wantErr error
	}{
		{"mentor confirms", domain.StatusRequested, mentor, "confirmed", nil},
		{"mentor completes", domain.StatusConfirmed, mentor, "completed", nil},
		{"mentee cancels requested", domain.StatusRequested, mentee, "cancelled", nil},
		{"mentor cancels confirmed", domain.StatusConfirmed, mentor, "cancelled", nil},
		{"mentee cannot confirm", domain.StatusRequested, mentee, "confirmed", domain.ErrForbidden},
		{"stranger cannot cancel", domain.StatusRequested, stranger, "cancelled", domain.ErrForbidden},
		{"complete skips confirm", domain.StatusRequested, mentor, "completed", domain.ErrInvalidTransition},
		{"cancel after complete", domain.StatusCompleted, mentee, "cancelled", domain.ErrInvalidTransition},
		{"reopen cancelled", domain.StatusCancelled, mentor, "confirmed", domain.ErrInvalidTransition},
		{"back to requested", domain.StatusConfirmed, mentor, "requested", domain.ErrInvalidTransition},
		{"unknown status", domain.StatusRequested, mentor, "paid", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(newBooking(1, tt.from))

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Actor: tt.actor, Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.bookings[1].Status)
				assert.Zero(t, repo.updates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, 1, repo.updates)
		})
	}
}

func TestUpdateStatus_CancelRecordsReasonAndTimestamp(t *testing.T) {
	svc, repo := newService(newBooking(1, domain.StatusConfirmed))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:              mentee,
		Status:             "cancelled",
		CancellationReason: ptr.Ptr("Schedule clash"),
	})
	require.NoError(t, err)

	saved := repo.bookings[1]
	require.NotNil(t, saved.CancellationReason)
	assert.Equal(t, "Schedule clash", *saved.CancellationReason)
	require.NotNil(t, saved.CancelledAt)
	assert.Equal(t, now, *saved.CancelledAt)
}

func TestUpdateStatus_MentorDetails(t *testing.T) {
	t.Run("mentor sets link on confirm", func(t *testing.T) {
		svc, repo := newService(newBooking(1, domain.StatusRequested))

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:       mentor,
			Status:      "confirmed",
			MeetingLink: ptr.Ptr("https://meet.example.com/abc"),
			MentorNotes: ptr.Ptr("Bring your CV"),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://meet.example.com/abc", *repo.bookings[1].MeetingLink)
		assert.Equal(t, "Bring your CV", *repo.bookings[1].MentorNotes)
		assert.NotNil(t, repo.bookings[1].ConfirmedAt)
	})

	t.Run("mentee cannot set notes", func(t *testing.T) {
		svc, repo := newService(newBooking(1, domain.StatusRequested))

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			Actor:       mentee,
			Status:      "cancelled",
			MentorNotes: ptr.Ptr("sneaky"),
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, domain.StatusRequested, repo.bookings[1].Status)
	})
}

func TestSubmitSummary(t *testing.T) {
	t.Run("mentor on confirmed booking", func(t *testing.T) {
		svc, repo := newService(newBooking(1, domain.StatusConfirmed))

		resp, err := svc.SubmitSummary(context.Background(), 1, &models.SubmitSummaryRequest{Actor: mentor, Summary: " Covered system design "})
		require.NoError(t, err)
		assert.Equal(t, "Covered system design", *resp.SessionSummary)
		assert.Equal(t, now, *repo.bookings[1].SummarySubmittedAt)
	})

	t.Run("requested booking", func(t *testing.T) {
		svc, _ := newService(newBooking(1, domain.StatusRequested))
		_, err := svc.SubmitSummary(context.Background(), 1, &models.SubmitSummaryRequest{Actor: mentor, Summary: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("mentee cannot submit", func(t *testing.T) {
		svc, _ := newService(newBooking(1, domain.StatusConfirmed))
		_, err := svc.SubmitSummary(context.Background(), 1, &models.SubmitSummaryRequest{Actor: mentee, Summary: "x"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("locked after consent", func(t *testing.T) {
		b := newBooking(1, domain.StatusCompleted)
		b.MenteeConsent = domain.ConsentApproved
		svc, _ := newService(b)
		_, err := svc.SubmitSummary(context.Background(), 1, &models.SubmitSummaryRequest{Actor: mentor, Summary: "x"})
		assert.ErrorIs(t, err, ErrSummaryLocked)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("empty summary", func(t *testing.T) {
		svc, _ := newService(newBooking(1, domain.StatusConfirmed))
		_, err := svc.SubmitSummary(context.Background(), 1, &models.SubmitSummaryRequest{Actor: mentor, Summary: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
