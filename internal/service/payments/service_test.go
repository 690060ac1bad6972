package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	balanceRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/balance"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type fakeBalanceRepo struct {
	balances map[int64]*domain.MentorBalance
	err      error
}

func (f *fakeBalanceRepo) GetByMentor(_ context.Context, mentorID int64) (*domain.MentorBalance, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.balances[mentorID]
	if !ok {
		return nil, balanceRepo.ErrBalanceNotFound
	}
	return b, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
	gotRole  domain.Role
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (f *fakePaymentRepo) GetByParticipant(_ context.Context, userID int64, role domain.Role) ([]*domain.Payment, error) {
	f.gotRole = role
	var result []*domain.Payment
	for _, p := range f.payments {
		if (role == domain.RoleMentor && p.MentorID == userID) || (role == domain.RoleMentee && p.MenteeID == userID) {
			result = append(result, p)
		}
	}
	return result, nil
}

var (
	mentor = domain.Actor{UserID: 2, Role: domain.RoleMentor}
	mentee = domain.Actor{UserID: 1, Role: domain.RoleMentee}
)

func TestGetBalance(t *testing.T) {
	balances := &fakeBalanceRepo{balances: map[int64]*domain.MentorBalance{
		mentor.UserID: {
			MentorID:       mentor.UserID,
			TotalEarned:    types.NewMoneyFromMinor(4000),
			PendingBalance: types.NewMoneyFromMinor(4000),
		},
	}}
	svc := NewService(balances, &fakePaymentRepo{}, logger.NewNop())

	resp, err := svc.GetBalance(context.Background(), mentor)
	require.NoError(t, err)
	assert.Equal(t, "40.00", resp.PendingBalance.String())
	assert.Equal(t, "0.00", resp.AvailableBalance.String())

	t.Run("no payments yet", func(t *testing.T) {
		resp, err := svc.GetBalance(context.Background(), domain.Actor{UserID: 9, Role: domain.RoleMentor})
		require.NoError(t, err)
		assert.Equal(t, int64(9), resp.MentorID)
		assert.Zero(t, resp.TotalEarned)
	})

	t.Run("mentee has no balance", func(t *testing.T) {
		_, err := svc.GetBalance(context.Background(), mentee)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("repository failure", func(t *testing.T) {
		balances.err = errors.New("connection refused")
		defer func() { balances.err = nil }()
		_, err := svc.GetBalance(context.Background(), mentor)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetHistory(t *testing.T) {
	payments := &fakePaymentRepo{payments: []*domain.Payment{
		{ID: 1, BookingID: 10, MenteeID: 1, MentorID: 2, Status: domain.PaymentSucceeded, Amount: types.NewMoneyFromMinor(5000)},
		{ID: 2, BookingID: 11, MenteeID: 3, MentorID: 2, Status: domain.PaymentPending},
	}}
	svc := NewService(&fakeBalanceRepo{}, payments, logger.NewNop())

	resp, err := svc.GetHistory(context.Background(), mentor)
	require.NoError(t, err)
	assert.Len(t, resp.Payments, 2)
	assert.Equal(t, domain.RoleMentor, payments.gotRole)

	resp, err = svc.GetHistory(context.Background(), mentee)
	require.NoError(t, err)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "50.00", resp.Payments[0].Amount.String())
	assert.Equal(t, "succeeded", resp.Payments[0].Status)
}

func TestGetByID(t *testing.T) {
	payments := &fakePaymentRepo{payments: []*domain.Payment{
		{ID: 1, BookingID: 10, MenteeID: 1, MentorID: 2, PaymentIntentID: "pi_A", Status: domain.PaymentSucceeded, Amount: types.NewMoneyFromMinor(5000)},
	}}
	svc := NewService(&fakeBalanceRepo{}, payments, logger.NewNop())

	for _, actor := range []domain.Actor{mentee, mentor} {
		resp, err := svc.GetByID(context.Background(), actor, 1)
		require.NoError(t, err)
		assert.Equal(t, "pi_A", resp.PaymentIntentID)
	}

	_, err := svc.GetByID(context.Background(), domain.Actor{UserID: 5, Role: domain.RoleMentee}, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), mentee, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
