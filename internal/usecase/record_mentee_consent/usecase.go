package record_mentee_consent

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
)

// UseCase use case ответа менти на отчет о сессии
type UseCase struct {
	bookingRepo    BookingRepository
	payoutReleaser PayoutReleaser
	txManager      TransactionManager
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	payoutReleaser PayoutReleaser,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		payoutReleaser: payoutReleaser,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute фиксирует согласие менти.
// При одобрении и проведенном платеже выплата разблокируется в той же транзакции.
// Отказ не отменяет платеж, только блокирует выплату.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordMenteeConsent: user=%d, booking=%d, approved=%t", req.Actor.UserID, req.BookingID, req.Approved)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordMenteeConsent: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Бронирование (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RecordMenteeConsent: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RecordMenteeConsent: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Проверки роли, наличия отчета и однократности ответа
		if err := booking.RecordConsent(req.Actor, req.Approved, req.Note, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("RecordMenteeConsent: booking id=%d: %v", booking.ID, err)
			return err
		}

		// 4. Сохраняем ответ
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("RecordMenteeConsent: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = &Response{
			BookingID:       booking.ID,
			MenteeConsent:   string(booking.MenteeConsent),
			MenteeConsentAt: booking.MenteeConsentAt,
		}

		if !booking.HasConsent() {
			return nil
		}

		// 5. Одобрение разблокирует выплату, если платеж уже проведен
		released, err := uc.payoutReleaser.ReleaseInTx(txCtx, booking)
		if err != nil {
			if errors.Is(err, release_payout.ErrPaymentNotSettled) {
				uc.logger.Info("RecordMenteeConsent: booking id=%d is not paid yet, payout stays pending", booking.ID)
				return nil
			}
			uc.logger.Error("RecordMenteeConsent: failed to release payout for booking id=%d: %v", booking.ID, err)
			return err
		}
		result.PayoutReleased = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.PayoutReleased {
		uc.metrics.IncPayoutReleased()
	}

	uc.logger.Info("RecordMenteeConsent: booking id=%d consent=%s, payout released=%t",
		result.BookingID, result.MenteeConsent, result.PayoutReleased)

	return result, nil
}
