package process_payment_event

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/stripeprovider"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// store общее состояние фейковых репозиториев; snapshot/restore имитируют откат транзакции
type store struct {
	events   map[string]bool
	bookings map[int64]domain.Booking
	payments map[string]domain.Payment
	pending  map[int64]types.Money
	credits  int
	nextID   int64
}

type snapshot struct {
	events   map[string]bool
	bookings map[int64]domain.Booking
	payments map[string]domain.Payment
	pending  map[int64]types.Money
	credits  int
}

func (s *store) snapshot() snapshot {
	snap := snapshot{
		events:   map[string]bool{},
		bookings: map[int64]domain.Booking{},
		payments: map[string]domain.Payment{},
		pending:  map[int64]types.Money{},
		credits:  s.credits,
	}
	for k, v := range s.events {
		snap.events[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	for k, v := range s.pending {
		snap.pending[k] = v
	}
	return snap
}

func (s *store) restore(snap snapshot) {
	s.events, s.bookings, s.payments, s.pending, s.credits = snap.events, snap.bookings, snap.payments, snap.pending, snap.credits
}

type fakeWebhookRepo struct{ s *store }

func (f fakeWebhookRepo) Record(_ context.Context, eventID, _ string) (bool, error) {
	if f.s.events[eventID] {
		return false, nil
	}
	f.s.events[eventID] = true
	return true, nil
}

type fakeBookingRepo struct{ s *store }

func (f fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (f fakeBookingRepo) GetByPaymentIntentID(_ context.Context, intentID string) (*domain.Booking, error) {
	for _, b := range f.s.bookings {
		if b.PaymentIntentID != nil && *b.PaymentIntentID == intentID {
			b := b
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	f.s.bookings[b.ID] = *b
	return nil
}

type fakePaymentRepo struct{ s *store }

func (f fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.s.nextID++
	p.ID = f.s.nextID
	f.s.payments[p.PaymentIntentID] = *p
	return p, nil
}

func (f fakePaymentRepo) GetByIntentID(_ context.Context, intentID string) (*domain.Payment, error) {
	p, ok := f.s.payments[intentID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return &p, nil
}

func (f fakePaymentRepo) GetSettledByBooking(_ context.Context, bookingID int64) (*domain.Payment, error) {
	for _, p := range f.s.payments {
		if p.BookingID == bookingID && p.Status == domain.PaymentSucceeded {
			p := p
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (f fakePaymentRepo) Update(_ context.Context, p *domain.Payment) error {
	f.s.payments[p.PaymentIntentID] = *p
	return nil
}

type fakeBalanceRepo struct {
	s   *store
	err error
}

func (f *fakeBalanceRepo) CreditPending(_ context.Context, mentorID int64, amount types.Money) error {
	if f.err != nil {
		return f.err
	}
	f.s.pending[mentorID] += amount
	f.s.credits++
	return nil
}

// rollbackTx откатывает состояние store, если fn вернула ошибку
type rollbackTx struct{ s *store }

func (tx rollbackTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := tx.s.snapshot()
	if err := fn(ctx); err != nil {
		tx.s.restore(snap)
		return err
	}
	return nil
}

type fakeMetrics struct {
	results []string
	fees    int64
}

func (f *fakeMetrics) IncWebhookEvent(result string) { f.results = append(f.results, result) }
func (f *fakeMetrics) ObserveSettlement(fee, _ int64) { f.fees += fee }

type fakeParser struct {
	event *domain.ProviderEvent
	err   error
}

func (f fakeParser) ParseEvent(_ []byte, _ string) (*domain.ProviderEvent, error) {
	return f.event, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

const (
	bookingID = int64(17)
	menteeID  = int64(1)
	mentorID  = int64(2)
)

type testEnv struct {
	s        *store
	balances *fakeBalanceRepo
	metrics  *fakeMetrics
}

func newTestEnv() *testEnv {
	intent := "pi_A"
	s := &store{
		events: map[string]bool{},
		bookings: map[int64]domain.Booking{
			bookingID: {
				ID:              bookingID,
				MenteeID:        menteeID,
				MentorID:        mentorID,
				Amount:          types.NewMoneyFromMinor(5000),
				Status:          domain.StatusConfirmed,
				PaymentStatus:   domain.BookingPaymentPending,
				PaymentIntentID: &intent,
				MenteeConsent:   domain.ConsentUnset,
			},
		},
		payments: map[string]domain.Payment{},
		pending:  map[int64]types.Money{},
	}
	return &testEnv{s: s, balances: &fakeBalanceRepo{s: s}, metrics: &fakeMetrics{}}
}

func (env *testEnv) useCase(parser EventParser, autoConfirm bool) *UseCase {
	uc := NewUseCase(
		parser,
		fakeWebhookRepo{s: env.s},
		fakeBookingRepo{s: env.s},
		fakePaymentRepo{s: env.s},
		env.balances,
		rollbackTx{s: env.s},
		env.metrics,
		domain.CommissionRate(domain.DefaultCommissionBasisPoints),
		autoConfirm,
		logger.NewNop(),
	)
	uc.timeProvider = fixedTime{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func succeeded(eventID, intentID string, minor int64, booking int64) *domain.ProviderEvent {
	return &domain.ProviderEvent{
		ID:              eventID,
		Type:            domain.EventPaymentIntentSucceeded,
		PaymentIntentID: intentID,
		Amount:          types.NewMoneyFromMinor(minor),
		Currency:        "gbp",
		Metadata:        map[string]string{"booking_id": strconv.FormatInt(booking, 10)},
	}
}

func TestExecute_SettlesPayment(t *testing.T) {
	env := newTestEnv()
	uc := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false)

	resp, err := uc.Execute(context.Background(), &Request{Payload: []byte("{}"), SignatureHeader: "t=1,v1=x"})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Equal(t, bookingID, resp.BookingID)
	assert.Equal(t, "10.00", resp.PlatformFee.String())
	assert.Equal(t, "40.00", resp.MentorPayout.String())

	payment := env.s.payments["pi_A"]
	assert.Equal(t, domain.PaymentSucceeded, payment.Status)
	assert.True(t, payment.WebhookProcessed)
	assert.True(t, payment.CommissionPaid)
	assert.False(t, payment.PayoutReleased)
	require.NotNil(t, payment.ProviderEventID)
	assert.Equal(t, "evt_1", *payment.ProviderEventID)

	booking := env.s.bookings[bookingID]
	assert.Equal(t, domain.BookingPaymentPaid, booking.PaymentStatus)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)

	assert.Equal(t, "40.00", env.s.pending[mentorID].String())
	assert.Equal(t, []string{StatusProcessed}, env.metrics.results)
	assert.Equal(t, int64(1000), env.metrics.fees)
}

func TestExecute_ReplayIsNoOp(t *testing.T) {
	env := newTestEnv()
	uc := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false)

	_, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusAlreadyProcessed, resp.Status)
	assert.Equal(t, 1, env.s.credits)
	assert.Equal(t, "40.00", env.s.pending[mentorID].String())
}

func TestExecute_SecondEventForSameIntentIsNoOp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	resp, err := env.useCase(fakeParser{event: succeeded("evt_2", "pi_A", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusPaymentAlreadyProcessed, resp.Status)
	assert.Equal(t, 1, env.s.credits)
}

func TestExecute_SecondIntentForPaidBookingIsNotCredited(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	resp, err := env.useCase(fakeParser{event: succeeded("evt_9", "pi_B", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusBookingAlreadyPaid, resp.Status)
	assert.Equal(t, 1, env.s.credits)
	_, exists := env.s.payments["pi_B"]
	assert.False(t, exists)
}

func TestExecute_UpdatesExistingPendingPayment(t *testing.T) {
	env := newTestEnv()
	env.s.payments["pi_A"] = domain.Payment{
		ID:              3,
		BookingID:       bookingID,
		MenteeID:        menteeID,
		MentorID:        mentorID,
		PaymentIntentID: "pi_A",
		Amount:          types.NewMoneyFromMinor(5000),
		Currency:        "gbp",
		Status:          domain.PaymentPending,
	}

	resp, err := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false).
		Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Len(t, env.s.payments, 1)
	assert.Equal(t, int64(3), env.s.payments["pi_A"].ID)
	assert.Equal(t, domain.PaymentSucceeded, env.s.payments["pi_A"].Status)
}

func TestExecute_FallsBackToIntentLookup(t *testing.T) {
	env := newTestEnv()
	event := succeeded("evt_1", "pi_A", 5000, bookingID)
	event.Metadata = nil

	resp, err := env.useCase(fakeParser{event: event}, false).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Equal(t, bookingID, resp.BookingID)
}

func TestExecute_AutoConfirm(t *testing.T) {
	env := newTestEnv()
	b := env.s.bookings[bookingID]
	b.Status = domain.StatusRequested
	env.s.bookings[bookingID] = b

	_, err := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, true).
		Execute(context.Background(), &Request{})
	require.NoError(t, err)

	booking := env.s.bookings[bookingID]
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.NotNil(t, booking.ConfirmedAt)
}

func TestExecute_UnknownBookingRollsBack(t *testing.T) {
	env := newTestEnv()
	uc := env.useCase(fakeParser{event: succeeded("evt_1", "pi_X", 5000, 999)}, false)

	_, err := uc.Execute(context.Background(), &Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Отметка о событии откатилась: повторная доставка будет обработана заново
	assert.False(t, env.s.events["evt_1"])
	assert.Empty(t, env.s.payments)
}

func TestExecute_CreditFailureRollsBack(t *testing.T) {
	env := newTestEnv()
	env.balances.err = errors.New("connection reset")
	uc := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false)

	_, err := uc.Execute(context.Background(), &Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	assert.False(t, env.s.events["evt_1"])
	assert.Empty(t, env.s.payments)
	assert.Equal(t, domain.BookingPaymentPending, env.s.bookings[bookingID].PaymentStatus)

	// Повтор после восстановления проводит платеж один раз
	env.balances.err = nil
	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Equal(t, 1, env.s.credits)
}

func TestExecute_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name      string
		parserErr error
		wantErr   error
		metric    string
	}{
		{"bad signature", stripeprovider.ErrInvalidSignature, ErrInvalidSignature, "invalid_signature"},
		{"malformed body", stripeprovider.ErrMalformedEvent, ErrMalformedEvent, "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			uc := env.useCase(fakeParser{err: tt.parserErr}, false)

			_, err := uc.Execute(context.Background(), &Request{Payload: []byte("{}")})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.s.events)
			assert.Equal(t, []string{tt.metric}, env.metrics.results)
		})
	}
}

func TestExecute_IgnoresUnrelatedEvents(t *testing.T) {
	env := newTestEnv()
	event := &domain.ProviderEvent{ID: "evt_5", Type: "charge.refunded"}

	resp, err := env.useCase(fakeParser{event: event}, false).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusIgnored, resp.Status)
	assert.Empty(t, env.s.events)
}

func TestExecute_PaymentFailed(t *testing.T) {
	env := newTestEnv()
	env.s.payments["pi_A"] = domain.Payment{
		ID:              3,
		BookingID:       bookingID,
		PaymentIntentID: "pi_A",
		Status:          domain.PaymentPending,
	}
	failed := &domain.ProviderEvent{ID: "evt_f", Type: domain.EventPaymentIntentFailed, PaymentIntentID: "pi_A"}

	resp, err := env.useCase(fakeParser{event: failed}, false).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusPaymentFailed, resp.Status)
	assert.Equal(t, domain.PaymentFailed, env.s.payments["pi_A"].Status)
	assert.Equal(t, domain.BookingPaymentPending, env.s.bookings[bookingID].PaymentStatus)
	assert.Zero(t, env.s.credits)
}

func TestExecute_SucceededAfterFailedRetry(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.s.payments["pi_A"] = domain.Payment{
		ID:              3,
		BookingID:       bookingID,
		MenteeID:        menteeID,
		MentorID:        mentorID,
		PaymentIntentID: "pi_A",
		Amount:          types.NewMoneyFromMinor(5000),
		Status:          domain.PaymentPending,
	}

	failed := &domain.ProviderEvent{ID: "evt_f", Type: domain.EventPaymentIntentFailed, PaymentIntentID: "pi_A"}
	resp, err := env.useCase(fakeParser{event: failed}, false).Execute(ctx, &Request{})
	require.NoError(t, err)
	require.Equal(t, StatusPaymentFailed, resp.Status)

	// Менти повторил оплату картой по тому же намерению
	resp, err = env.useCase(fakeParser{event: succeeded("evt_s", "pi_A", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Equal(t, "40.00", resp.MentorPayout.String())

	payment := env.s.payments["pi_A"]
	assert.Equal(t, domain.PaymentSucceeded, payment.Status)
	assert.Equal(t, "evt_s", *payment.ProviderEventID)
	assert.Equal(t, domain.BookingPaymentPaid, env.s.bookings[bookingID].PaymentStatus)
	assert.Equal(t, "40.00", env.s.pending[mentorID].String())
	assert.Equal(t, 1, env.s.credits)
}

func TestExecute_LateFailureDoesNotUndoSettlement(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.useCase(fakeParser{event: succeeded("evt_1", "pi_A", 5000, bookingID)}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	failed := &domain.ProviderEvent{ID: "evt_f", Type: domain.EventPaymentIntentFailed, PaymentIntentID: "pi_A"}
	resp, err := env.useCase(fakeParser{event: failed}, false).Execute(ctx, &Request{})
	require.NoError(t, err)

	assert.Equal(t, StatusPaymentAlreadyProcessed, resp.Status)
	assert.Equal(t, domain.PaymentSucceeded, env.s.payments["pi_A"].Status)
}

func TestExecute_FailureForUnknownIntentIgnored(t *testing.T) {
	env := newTestEnv()
	failed := &domain.ProviderEvent{ID: "evt_f", Type: domain.EventPaymentIntentFailed, PaymentIntentID: "pi_unknown"}

	resp, err := env.useCase(fakeParser{event: failed}, false).Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, StatusIgnored, resp.Status)
}
