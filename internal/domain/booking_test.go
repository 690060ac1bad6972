package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMentorID = int64(10)
	testMenteeID = int64(20)
)

var (
	mentor   = Actor{UserID: testMentorID, Role: RoleMentor}
	mentee   = Actor{UserID: testMenteeID, Role: RoleMentee}
	stranger = Actor{UserID: 99, Role: RoleMentee}
	testNow  = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newTestBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:            1,
		MenteeID:      testMenteeID,
		MentorID:      testMentorID,
		SessionDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     ts("10:00"),
		EndTime:       ts("11:00"),
		Status:        status,
		PaymentStatus: BookingPaymentPending,
		MenteeConsent: ConsentUnset,
	}
}

func TestBooking_Transition(t *testing.T) {
	reason := "schedule changed"

	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		actor   Actor
		wantErr error
	}{
		{name: "mentor confirms requested", from: StatusRequested, to: StatusConfirmed, actor: mentor},
		{name: "mentor completes confirmed", from: StatusConfirmed, to: StatusCompleted, actor: mentor},
		{name: "mentee cancels requested", from: StatusRequested, to: StatusCancelled, actor: mentee},
		{name: "mentor cancels confirmed", from: StatusConfirmed, to: StatusCancelled, actor: mentor},
		{name: "mentee cannot confirm", from: StatusRequested, to: StatusConfirmed, actor: mentee, wantErr: ErrForbidden},
		{name: "mentee cannot complete", from: StatusConfirmed, to: StatusCompleted, actor: mentee, wantErr: ErrForbidden},
		{name: "stranger cannot cancel", from: StatusRequested, to: StatusCancelled, actor: stranger, wantErr: ErrForbidden},
		{name: "complete skipping confirm", from: StatusRequested, to: StatusCompleted, actor: mentor, wantErr: ErrInvalidTransition},
		{name: "cancel completed", from: StatusCompleted, to: StatusCancelled, actor: mentee, wantErr: ErrInvalidTransition},
		{name: "confirm cancelled", from: StatusCancelled, to: StatusConfirmed, actor: mentor, wantErr: ErrInvalidTransition},
		{name: "back to requested", from: StatusConfirmed, to: StatusRequested, actor: mentor, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(tt.from)
			err := b.Transition(tt.actor, tt.to, &reason, testNow)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, b.Status, "status must stay unchanged on error")
				assert.Nil(t, b.ConfirmedAt)
				assert.Nil(t, b.CompletedAt)
				assert.Nil(t, b.CancelledAt)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, b.Status)
		})
	}
}

func TestBooking_TransitionTimestamps(t *testing.T) {
	reason := "ill"
	b := newTestBooking(StatusRequested)

	require.NoError(t, b.Transition(mentor, StatusConfirmed, nil, testNow))
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, testNow, *b.ConfirmedAt)

	later := testNow.Add(time.Hour)
	require.NoError(t, b.Transition(mentee, StatusCancelled, &reason, later))
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, later, *b.CancelledAt)
	assert.Equal(t, "ill", *b.CancellationReason)
	assert.True(t, b.IsTerminal())
	assert.False(t, b.IsActive())
}

func TestBooking_SetMentorDetails(t *testing.T) {
	notes := "bring your CV"
	b := newTestBooking(StatusRequested)

	assert.ErrorIs(t, b.SetMentorDetails(mentee, &notes, nil), ErrForbidden)
	require.NoError(t, b.SetMentorDetails(mentor, &notes, nil))
	assert.Equal(t, notes, *b.MentorNotes)
	assert.Nil(t, b.MeetingLink)
}

func TestBooking_SummaryAndConsent(t *testing.T) {
	b := newTestBooking(StatusRequested)

	err := b.SubmitSummary(mentor, "covered system design", testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition, "summary requires confirmed booking")

	b.Status = StatusConfirmed
	assert.ErrorIs(t, b.RecordConsent(mentee, true, nil, testNow), ErrSummaryRequired)
	assert.ErrorIs(t, b.SubmitSummary(mentee, "x", testNow), ErrForbidden)

	require.NoError(t, b.SubmitSummary(mentor, "covered system design", testNow))
	require.NotNil(t, b.SummarySubmittedAt)

	assert.ErrorIs(t, b.RecordConsent(mentor, true, nil, testNow), ErrForbidden)
	require.NoError(t, b.RecordConsent(mentee, true, nil, testNow))
	assert.True(t, b.HasConsent())

	assert.ErrorIs(t, b.RecordConsent(mentee, false, nil, testNow), ErrConflict, "consent is recorded once")
	assert.ErrorIs(t, b.SubmitSummary(mentor, "rewrite", testNow), ErrConflict)
}

func TestBooking_MarkPaid(t *testing.T) {
	b := newTestBooking(StatusRequested)
	b.MarkPaid("pi_1", false, testNow)
	assert.True(t, b.IsPaid())
	assert.Equal(t, StatusRequested, b.Status, "confirmation stays a separate mentor action")
	assert.Equal(t, "pi_1", *b.PaymentIntentID)

	auto := newTestBooking(StatusRequested)
	auto.MarkPaid("pi_2", true, testNow)
	assert.Equal(t, StatusConfirmed, auto.Status)
	require.NotNil(t, auto.ConfirmedAt)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input    string
		expected Role
		wantErr  bool
	}{
		{input: "mentor", expected: RoleMentor},
		{input: "Mentor", expected: RoleMentor},
		{input: " MENTEE ", expected: RoleMentee},
		{input: "admin", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}
