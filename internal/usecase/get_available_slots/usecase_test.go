package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByMentorInRange(_ context.Context, mentorID int64, from, to time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.MentorID == mentorID && b.IsActive() && !b.SessionDate.Before(from) && !b.SessionDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetByMentor(_ context.Context, mentorID int64, filter domain.AvailabilityFilter) ([]*domain.AvailabilityRule, error) {
	var out []*domain.AvailabilityRule
	for _, r := range f.rules {
		if r.MentorID != mentorID || (filter.ActiveOnly && !r.IsActive) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeBlockedDateRepo struct {
	blocked []*domain.BlockedDate
	err     error
}

func (f *fakeBlockedDateRepo) GetByMentorInRange(_ context.Context, _ int64, _, _ *time.Time) ([]*domain.BlockedDate, error) {
	return f.blocked, f.err
}

type fakeProfileClient struct {
	err error
}

func (f *fakeProfileClient) GetMentor(_ context.Context, mentorID int64) (*domain.MentorProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	rate := types.NewMoneyFromMinor(5000)
	return &domain.MentorProfile{UserID: mentorID, Role: domain.RoleMentor, HourlyRate: &rate}, nil
}

const mentorID = int64(2)

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func rule(id int64, day int, start, end string, active bool) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:        id,
		MentorID:  mentorID,
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		IsActive:  active,
	}
}

func booking(day, start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		MentorID:    mentorID,
		SessionDate: date(day),
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		Status:      status,
	}
}

func newUseCase(rules []*domain.AvailabilityRule, blocked []*domain.BlockedDate, bookings []*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeAvailabilityRepo{rules: rules},
		&fakeBlockedDateRepo{blocked: blocked},
		&fakeProfileClient{},
		logger.NewNop(),
	)
}

func TestExecute_Materialization(t *testing.T) {
	// 2024-06-10 понедельник (0), 2024-06-11 вторник (1)
	rules := []*domain.AvailabilityRule{
		rule(1, 0, "09:00", "10:00", true),
		rule(2, 0, "10:00", "12:00", true),
		rule(3, 1, "14:00", "15:00", true),
		rule(4, 1, "16:00", "17:00", false),
	}

	tests := []struct {
		name     string
		blocked  []*domain.BlockedDate
		bookings []*domain.Booking
		start    string
		end      string
		want     []string
	}{
		{
			name:  "all rule windows in range",
			start: "2024-06-10",
			end:   "2024-06-11",
			want: []string{
				"2024-06-10 09:00-10:00",
				"2024-06-10 10:00-12:00",
				"2024-06-11 14:00-15:00",
			},
		},
		{
			name:    "blocked date is skipped",
			blocked: []*domain.BlockedDate{{MentorID: mentorID, Date: date("2024-06-10")}},
			start:   "2024-06-10",
			end:     "2024-06-11",
			want:    []string{"2024-06-11 14:00-15:00"},
		},
		{
			name:     "overlapping booking removes the whole window",
			bookings: []*domain.Booking{booking("2024-06-10", "10:30", "11:00", domain.StatusRequested)},
			start:    "2024-06-10",
			end:      "2024-06-10",
			want:     []string{"2024-06-10 09:00-10:00"},
		},
		{
			name:     "touching booking does not remove window",
			bookings: []*domain.Booking{booking("2024-06-10", "08:00", "09:00", domain.StatusConfirmed)},
			start:    "2024-06-10",
			end:      "2024-06-10",
			want:     []string{"2024-06-10 09:00-10:00", "2024-06-10 10:00-12:00"},
		},
		{
			name:     "cancelled booking frees the window",
			bookings: []*domain.Booking{booking("2024-06-10", "09:00", "10:00", domain.StatusCancelled)},
			start:    "2024-06-10",
			end:      "2024-06-10",
			want:     []string{"2024-06-10 09:00-10:00", "2024-06-10 10:00-12:00"},
		},
		{
			name:     "booking on another date does not matter",
			bookings: []*domain.Booking{booking("2024-06-17", "09:00", "10:00", domain.StatusConfirmed)},
			start:    "2024-06-10",
			end:      "2024-06-10",
			want:     []string{"2024-06-10 09:00-10:00", "2024-06-10 10:00-12:00"},
		},
		{
			name:  "single day without rules",
			start: "2024-06-12",
			end:   "2024-06-12",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(rules, tt.blocked, tt.bookings)

			resp, err := uc.Execute(context.Background(), &Request{
				MentorID:  mentorID,
				StartDate: date(tt.start),
				EndDate:   date(tt.end),
			})
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Slots))
			for _, s := range resp.Slots {
				got = append(got, s.Date.Format(domain.DateFormat)+" "+s.StartTime.String()+"-"+s.EndTime.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_DurationFromRule(t *testing.T) {
	uc := newUseCase([]*domain.AvailabilityRule{rule(1, 0, "10:00", "12:30", true)}, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		MentorID:  mentorID,
		StartDate: date("2024-06-10"),
		EndDate:   date("2024-06-10"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 150, resp.Slots[0].DurationMinutes)
}

func TestExecute_Deterministic(t *testing.T) {
	rules := []*domain.AvailabilityRule{rule(1, 0, "09:00", "10:00", true), rule(2, 2, "18:00", "19:00", true)}
	uc := newUseCase(rules, nil, nil)
	req := &Request{MentorID: mentorID, StartDate: date("2024-06-01"), EndDate: date("2024-06-30")}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Slots, 8) // 4 понедельника и 4 среды в июне 2024
}

func TestExecute_Errors(t *testing.T) {
	t.Run("reversed range", func(t *testing.T) {
		uc := newUseCase(nil, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{
			MentorID: mentorID, StartDate: date("2024-06-11"), EndDate: date("2024-06-10"),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("range too long", func(t *testing.T) {
		uc := newUseCase(nil, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{
			MentorID: mentorID, StartDate: date("2024-01-01"), EndDate: date("2024-12-31"),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("unknown mentor", func(t *testing.T) {
		uc := NewUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeBlockedDateRepo{},
			&fakeProfileClient{err: profileservice.ErrMentorNotFound}, logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{
			MentorID: mentorID, StartDate: date("2024-06-10"), EndDate: date("2024-06-10"),
		})
		assert.ErrorIs(t, err, ErrMentorNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := NewUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{rule(1, 0, "09:00", "10:00", true)}},
			&fakeBlockedDateRepo{err: errors.New("db down")}, &fakeProfileClient{}, logger.NewNop())
		_, err := uc.Execute(context.Background(), &Request{
			MentorID: mentorID, StartDate: date("2024-06-10"), EndDate: date("2024-06-10"),
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
