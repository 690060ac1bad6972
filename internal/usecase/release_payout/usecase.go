package release_payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	balanceRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/balance"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
)

// UseCase use case разблокировки выплаты ментору
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	balanceRepo  BalanceRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	balanceRepo BalanceRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		balanceRepo:  balanceRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет явную разблокировку выплаты ментором
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleasePayout: user=%d, booking=%d", req.Actor.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleasePayout: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Бронирование и платеж блокируются до конца транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ReleasePayout: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ReleasePayout: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsMentor(req.Actor) {
			uc.logger.Warn("ReleasePayout: user id=%d is not the mentor of booking id=%d", req.Actor.UserID, booking.ID)
			return ErrNotMentor
		}

		payment, released, err := uc.release(txCtx, booking)
		if err != nil {
			return err
		}

		result = &Response{
			BookingID:        booking.ID,
			PaymentID:        payment.ID,
			MentorPayout:     payment.MentorPayout,
			Released:         released,
			PayoutReleasedAt: payment.PayoutReleasedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Released {
		uc.metrics.IncPayoutReleased()
	}

	return result, nil
}

// ReleaseInTx разблокирует выплату в транзакции вызывающего.
// Бронирование должно быть прочитано в этой же транзакции.
// Возвращает false без ошибки, если выплата уже разблокирована.
// Метрику после коммита пишет вызывающий.
func (uc *UseCase) ReleaseInTx(txCtx context.Context, booking *domain.Booking) (bool, error) {
	_, released, err := uc.release(txCtx, booking)
	return released, err
}

func (uc *UseCase) release(txCtx context.Context, booking *domain.Booking) (*domain.Payment, bool, error) {
	// 1. Выплата возможна только после одобрения отчета менти
	if !booking.HasConsent() {
		uc.logger.Warn("ReleasePayout: booking id=%d has consent=%s", booking.ID, booking.MenteeConsent)
		return nil, false, ErrConsentRequired
	}

	// 2. Проведенный платеж бронирования (FOR UPDATE)
	payment, err := uc.paymentRepo.GetSettledByBooking(txCtx, booking.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("ReleasePayout: booking id=%d has no settled payment", booking.ID)
			return nil, false, ErrPaymentNotSettled
		}
		uc.logger.Error("ReleasePayout: failed to get payment for booking id=%d: %v", booking.ID, err)
		return nil, false, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// 3. Повторная разблокировка ничего не меняет
	if !payment.ReleasePayout(uc.timeProvider.Now()) {
		uc.logger.Info("ReleasePayout: payment id=%d already released", payment.ID)
		return payment, false, nil
	}

	// 4. pending -> available на сумму выплаты
	if err := uc.balanceRepo.ReleasePending(txCtx, booking.MentorID, payment.MentorPayout); err != nil {
		if errors.Is(err, balanceRepo.ErrInsufficientPending) {
			uc.logger.Error("ReleasePayout: mentor id=%d pending balance is below payout %s of payment id=%d",
				booking.MentorID, payment.MentorPayout, payment.ID)
		} else {
			uc.logger.Error("ReleasePayout: failed to move balance for mentor id=%d: %v", booking.MentorID, err)
		}
		return nil, false, fmt.Errorf("%w: failed to release pending balance: %v", ErrInternal, err)
	}

	// 5. Фиксируем разблокировку на платеже
	if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
		uc.logger.Error("ReleasePayout: failed to update payment id=%d: %v", payment.ID, err)
		return nil, false, fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
	}

	uc.logger.Info("ReleasePayout: released %s to mentor id=%d for booking id=%d",
		payment.MentorPayout, booking.MentorID, booking.ID)

	return payment, true, nil
}
