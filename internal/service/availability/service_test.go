package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	blockedDateRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/blockeddate"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
	"github.com/m04kA/SMC-MentorshipService/pkg/txmanager"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type fakeRuleRepo struct {
	rules  map[int64]*domain.AvailabilityRule
	nextID int64
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	f.nextID++
	rule.ID = f.nextID
	f.rules[rule.ID] = rule
	return rule, nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, availabilityRepo.ErrRuleNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRuleRepo) GetByMentor(_ context.Context, mentorID int64, filter domain.AvailabilityFilter) ([]*domain.AvailabilityRule, error) {
	var result []*domain.AvailabilityRule
	for id := int64(1); id <= f.nextID; id++ {
		r, ok := f.rules[id]
		if !ok || r.MentorID != mentorID {
			continue
		}
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.DayOfWeek != nil && r.DayOfWeek != *filter.DayOfWeek {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRuleRepo) SetActive(_ context.Context, id int64, active bool) error {
	f.rules[id].IsActive = active
	return nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rules[id]; !ok {
		return availabilityRepo.ErrRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

type fakeBlockedDateRepo struct {
	dates  map[int64]*domain.BlockedDate
	nextID int64
}

func (f *fakeBlockedDateRepo) Create(_ context.Context, d *domain.BlockedDate) (*domain.BlockedDate, error) {
	for _, existing := range f.dates {
		if existing.MentorID == d.MentorID && existing.Date.Equal(d.Date) {
			return nil, blockedDateRepo.ErrAlreadyBlocked
		}
	}
	f.nextID++
	d.ID = f.nextID
	f.dates[d.ID] = d
	return d, nil
}

func (f *fakeBlockedDateRepo) GetByID(_ context.Context, id int64) (*domain.BlockedDate, error) {
	d, ok := f.dates[id]
	if !ok {
		return nil, blockedDateRepo.ErrBlockedDateNotFound
	}
	return d, nil
}

func (f *fakeBlockedDateRepo) GetByMentorInRange(_ context.Context, mentorID int64, _, _ *time.Time) ([]*domain.BlockedDate, error) {
	var result []*domain.BlockedDate
	for _, d := range f.dates {
		if d.MentorID == mentorID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeBlockedDateRepo) Delete(_ context.Context, id int64) error {
	delete(f.dates, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByMentorFrom(_ context.Context, mentorID int64, from time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.MentorID == mentorID && !b.SessionDate.Before(from) && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type passThroughTx struct {
	serializationErr bool
}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (p passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if p.serializationErr {
		return txmanager.ErrSerialization
	}
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	mentor      = domain.Actor{UserID: 2, Role: domain.RoleMentor}
	otherMentor = domain.Actor{UserID: 5, Role: domain.RoleMentor}
	mentee      = domain.Actor{UserID: 1, Role: domain.RoleMentee}
	// Понедельник
	today = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
)

type testEnv struct {
	svc      *Service
	rules    *fakeRuleRepo
	blocked  *fakeBlockedDateRepo
	bookings *fakeBookingRepo
}

func newTestEnv(tx passThroughTx) *testEnv {
	env := &testEnv{
		rules:    &fakeRuleRepo{rules: map[int64]*domain.AvailabilityRule{}},
		blocked:  &fakeBlockedDateRepo{dates: map[int64]*domain.BlockedDate{}},
		bookings: &fakeBookingRepo{},
	}
	env.svc = NewService(env.rules, env.blocked, env.bookings, tx, logger.NewNop())
	env.svc.timeProvider = fixedTime{now: today}
	return env
}

func (env *testEnv) addRule(t *testing.T, day int, start, end string) *models.RuleResponse {
	t.Helper()
	resp, err := env.svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		Actor: mentor, DayOfWeek: day, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRule(t *testing.T) {
	env := newTestEnv(passThroughTx{})
	first := env.addRule(t, 0, "09:00", "12:00")
	assert.Equal(t, 180, first.DurationMinutes)
	assert.True(t, first.IsActive)

	tests := []struct {
		name    string
		actor   domain.Actor
		day     int
		start   string
		end     string
		wantErr error
	}{
		{"overlapping same day", mentor, 0, "11:00", "13:00", domain.ErrConflict},
		{"touching same day", mentor, 0, "12:00", "13:00", nil},
		{"same hours other day", mentor, 1, "09:00", "12:00", nil},
		{"other mentor same hours", otherMentor, 0, "09:00", "12:00", nil},
		{"mentee", mentee, 0, "14:00", "15:00", domain.ErrForbidden},
		{"start after end", mentor, 2, "12:00", "09:00", ErrInvalidInput},
		{"bad weekday", mentor, 7, "09:00", "10:00", ErrInvalidInput},
		{"bad time", mentor, 2, "9am", "10:00", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateRule(context.Background(), &models.CreateRuleRequest{
				Actor: tt.actor, DayOfWeek: tt.day, StartTime: tt.start, EndTime: tt.end,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateRule_SerializationFailureIsConflict(t *testing.T) {
	env := newTestEnv(passThroughTx{serializationErr: true})

	_, err := env.svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		Actor: mentor, DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSetRuleActive_ReactivationRechecksOverlap(t *testing.T) {
	env := newTestEnv(passThroughTx{})
	first := env.addRule(t, 0, "09:00", "12:00")

	_, err := env.svc.SetRuleActive(context.Background(), first.ID, &models.SetRuleActiveRequest{Actor: mentor, IsActive: false})
	require.NoError(t, err)

	// Пока первое выключено, пересекающееся окно разрешено
	env.addRule(t, 0, "10:00", "11:00")

	_, err = env.svc.SetRuleActive(context.Background(), first.ID, &models.SetRuleActiveRequest{Actor: mentor, IsActive: true})
	assert.ErrorIs(t, err, ErrRuleOverlap)
	assert.False(t, env.rules.rules[first.ID].IsActive)

	_, err = env.svc.SetRuleActive(context.Background(), first.ID, &models.SetRuleActiveRequest{Actor: otherMentor, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.svc.SetRuleActive(context.Background(), 404, &models.SetRuleActiveRequest{Actor: mentor, IsActive: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRule(t *testing.T) {
	env := newTestEnv(passThroughTx{})
	monday := env.addRule(t, 0, "09:00", "12:00")
	tuesday := env.addRule(t, 1, "09:00", "12:00")

	env.bookings.bookings = []*domain.Booking{
		// Следующий понедельник, внутри окна
		{ID: 1, MentorID: mentor.UserID, SessionDate: time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"), Status: domain.StatusConfirmed},
		// Вторник, но отменено
		{ID: 2, MentorID: mentor.UserID, SessionDate: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"), Status: domain.StatusCancelled},
	}

	err := env.svc.DeleteRule(context.Background(), monday.ID, mentor)
	assert.ErrorIs(t, err, ErrRuleInUse)
	assert.Contains(t, env.rules.rules, monday.ID)

	err = env.svc.DeleteRule(context.Background(), tuesday.ID, otherMentor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = env.svc.DeleteRule(context.Background(), tuesday.ID, mentor)
	require.NoError(t, err)
	assert.NotContains(t, env.rules.rules, tuesday.ID)
}

func TestBlockedDates(t *testing.T) {
	env := newTestEnv(passThroughTx{})
	ctx := context.Background()

	created, err := env.svc.CreateBlockedDate(ctx, &models.CreateBlockedDateRequest{Actor: mentor, Date: "2024-06-12", Reason: ptr.Ptr("Conference")})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", created.Date)

	_, err = env.svc.CreateBlockedDate(ctx, &models.CreateBlockedDateRequest{Actor: mentor, Date: "2024-06-12"})
	assert.ErrorIs(t, err, ErrAlreadyBlocked)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = env.svc.CreateBlockedDate(ctx, &models.CreateBlockedDateRequest{Actor: mentor, Date: "12/06/2024"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.svc.CreateBlockedDate(ctx, &models.CreateBlockedDateRequest{Actor: mentee, Date: "2024-06-13"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := env.svc.GetMyBlockedDates(ctx, mentor)
	require.NoError(t, err)
	require.Len(t, list.BlockedDates, 1)
	assert.Equal(t, "Conference", *list.BlockedDates[0].Reason)

	err = env.svc.DeleteBlockedDate(ctx, created.ID, otherMentor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.svc.DeleteBlockedDate(ctx, created.ID, mentor))

	err = env.svc.DeleteBlockedDate(ctx, created.ID, mentor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
