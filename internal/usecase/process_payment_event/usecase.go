package process_payment_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/stripeprovider"
)

// UseCase use case обработки событий платежного провайдера
type UseCase struct {
	parser         EventParser
	webhookRepo    WebhookEventRepository
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	balanceRepo    BalanceRepository
	txManager      TransactionManager
	metrics        Metrics
	commissionRate domain.CommissionRate
	autoConfirm    bool
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// autoConfirm - переводить ли запрошенную сессию в confirmed при оплате.
func NewUseCase(
	parser EventParser,
	webhookRepo WebhookEventRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	balanceRepo BalanceRepository,
	txManager TransactionManager,
	metrics Metrics,
	commissionRate domain.CommissionRate,
	autoConfirm bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		parser:         parser,
		webhookRepo:    webhookRepo,
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		balanceRepo:    balanceRepo,
		txManager:      txManager,
		metrics:        metrics,
		commissionRate: commissionRate,
		autoConfirm:    autoConfirm,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute проверяет подпись, разбирает событие и применяет его ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. До проверки подписи тело не интерпретируется
	event, err := uc.parser.ParseEvent(req.Payload, req.SignatureHeader)
	if err != nil {
		switch {
		case errors.Is(err, stripeprovider.ErrInvalidSignature):
			uc.logger.Warn("ProcessPaymentEvent: rejected unsigned or tampered payload: %v", err)
			uc.metrics.IncWebhookEvent("invalid_signature")
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			uc.logger.Warn("ProcessPaymentEvent: rejected malformed payload: %v", err)
			uc.metrics.IncWebhookEvent("malformed")
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
	}

	uc.logger.Info("ProcessPaymentEvent: event=%s, type=%s, intent=%s", event.ID, event.Type, event.PaymentIntentID)

	// 2. Применяем событие
	resp, err := uc.Process(ctx, event)
	if err != nil {
		uc.metrics.IncWebhookEvent("error")
		return nil, err
	}

	uc.metrics.IncWebhookEvent(resp.Status)
	if resp.Status == StatusProcessed {
		uc.metrics.ObserveSettlement(resp.PlatformFee.Minor(), resp.MentorPayout.Minor())
	}
	return resp, nil
}

// Process применяет уже проверенное событие.
// Отметка о событии пишется в той же транзакции, что и его эффекты:
// две параллельные доставки одного события не пройдут проверку обе,
// а сбой посередине откатывает и отметку, и повтор доделает работу.
func (uc *UseCase) Process(ctx context.Context, event *domain.ProviderEvent) (*Response, error) {
	switch event.Type {
	case domain.EventPaymentIntentSucceeded:
		return uc.processSucceeded(ctx, event)
	case domain.EventPaymentIntentFailed:
		return uc.processFailed(ctx, event)
	default:
		uc.logger.Info("ProcessPaymentEvent: ignoring event=%s of type=%s", event.ID, event.Type)
		return &Response{EventID: event.ID, EventType: event.Type, Status: StatusIgnored}, nil
	}
}

func (uc *UseCase) processSucceeded(ctx context.Context, event *domain.ProviderEvent) (*Response, error) {
	resp := &Response{EventID: event.ID, EventType: event.Type}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Отметка о событии. Повтор того же события - no-op.
		inserted, err := uc.webhookRepo.Record(txCtx, event.ID, event.Type)
		if err != nil {
			uc.logger.Error("ProcessPaymentEvent: failed to record event=%s: %v", event.ID, err)
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}
		if !inserted {
			uc.logger.Info("ProcessPaymentEvent: event=%s already processed", event.ID)
			resp.Status = StatusAlreadyProcessed
			return nil
		}

		// 2. Платеж по намерению (FOR UPDATE). Уже проведенный платеж - no-op,
		// неуспешный проводится: оплату по намерению могли повторить.
		payment, err := uc.paymentRepo.GetByIntentID(txCtx, event.PaymentIntentID)
		if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("ProcessPaymentEvent: failed to get payment by intent=%s: %v", event.PaymentIntentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}
		if payment != nil && payment.IsSettled() {
			uc.logger.Info("ProcessPaymentEvent: intent=%s already settled by event=%s",
				event.PaymentIntentID, derefString(payment.ProviderEventID))
			resp.Status = StatusPaymentAlreadyProcessed
			resp.BookingID = payment.BookingID
			return nil
		}

		// 3. Бронирование: по метаданным, иначе по сохраненному намерению
		booking, err := uc.resolveBooking(txCtx, event)
		if err != nil {
			return err
		}
		resp.BookingID = booking.ID

		// 4. Бронирование уже оплачено другим намерением: второй раз не зачисляем
		if booking.IsPaid() {
			settled, err := uc.paymentRepo.GetSettledByBooking(txCtx, booking.ID)
			if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Error("ProcessPaymentEvent: failed to get settled payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to get settled payment: %v", ErrInternal, err)
			}
			if settled != nil && settled.PaymentIntentID != event.PaymentIntentID {
				uc.logger.Error("ProcessPaymentEvent: duplicate charge for booking id=%d: intent=%s, already settled intent=%s",
					booking.ID, event.PaymentIntentID, settled.PaymentIntentID)
				resp.Status = StatusBookingAlreadyPaid
				return nil
			}
		}

		if event.Amount != booking.Amount {
			uc.logger.Warn("ProcessPaymentEvent: event=%s amount %s differs from booking id=%d amount %s",
				event.ID, event.Amount, booking.ID, booking.Amount)
		}

		now := uc.timeProvider.Now()

		// 5. Комиссия и выплата, платеж -> succeeded
		if payment == nil {
			payment = &domain.Payment{
				BookingID:       booking.ID,
				MenteeID:        booking.MenteeID,
				MentorID:        booking.MentorID,
				PaymentIntentID: event.PaymentIntentID,
				Currency:        domain.DefaultCurrency,
			}
			payment.Settle(event.ID, event.Amount, event.Currency, uc.commissionRate, now)
			if _, err := uc.paymentRepo.Create(txCtx, payment); err != nil {
				uc.logger.Error("ProcessPaymentEvent: failed to create payment for intent=%s: %v", event.PaymentIntentID, err)
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}
		} else {
			payment.Settle(event.ID, event.Amount, event.Currency, uc.commissionRate, now)
			if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
				uc.logger.Error("ProcessPaymentEvent: failed to update payment id=%d: %v", payment.ID, err)
				return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
			}
		}

		// 6. Бронирование -> paid. Подтверждение остается отдельным действием ментора,
		// если не включен autoConfirm.
		booking.MarkPaid(event.PaymentIntentID, uc.autoConfirm, now)
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("ProcessPaymentEvent: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 7. Выплата ментору в pending до согласия менти
		if err := uc.balanceRepo.CreditPending(txCtx, booking.MentorID, payment.MentorPayout); err != nil {
			uc.logger.Error("ProcessPaymentEvent: failed to credit mentor id=%d: %v", booking.MentorID, err)
			return fmt.Errorf("%w: failed to credit balance: %v", ErrInternal, err)
		}

		resp.Status = StatusProcessed
		resp.PlatformFee = payment.PlatformFee
		resp.MentorPayout = payment.MentorPayout
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Status == StatusProcessed {
		uc.logger.Info("ProcessPaymentEvent: settled booking id=%d: fee=%s, payout=%s (rate %.2f%%)",
			resp.BookingID, resp.PlatformFee, resp.MentorPayout, uc.commissionRate.Percent())
	}

	return resp, nil
}

func (uc *UseCase) processFailed(ctx context.Context, event *domain.ProviderEvent) (*Response, error) {
	resp := &Response{EventID: event.ID, EventType: event.Type}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		inserted, err := uc.webhookRepo.Record(txCtx, event.ID, event.Type)
		if err != nil {
			uc.logger.Error("ProcessPaymentEvent: failed to record event=%s: %v", event.ID, err)
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}
		if !inserted {
			resp.Status = StatusAlreadyProcessed
			return nil
		}

		payment, err := uc.paymentRepo.GetByIntentID(txCtx, event.PaymentIntentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("ProcessPaymentEvent: failure for unknown intent=%s ignored", event.PaymentIntentID)
				resp.Status = StatusIgnored
				return nil
			}
			uc.logger.Error("ProcessPaymentEvent: failed to get payment by intent=%s: %v", event.PaymentIntentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}
		resp.BookingID = payment.BookingID

		// Проведенный платеж не откатывается поздним событием об ошибке
		if payment.IsSettled() {
			resp.Status = StatusPaymentAlreadyProcessed
			return nil
		}

		payment.MarkFailed(event.ID, uc.timeProvider.Now())
		if err := uc.paymentRepo.Update(txCtx, payment); err != nil {
			uc.logger.Error("ProcessPaymentEvent: failed to mark payment id=%d failed: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to update payment: %v", ErrInternal, err)
		}

		resp.Status = StatusPaymentFailed
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ProcessPaymentEvent: event=%s for intent=%s -> %s", event.ID, event.PaymentIntentID, resp.Status)
	return resp, nil
}

// resolveBooking бронирование по booking_id из метаданных, иначе по payment_intent_id
func (uc *UseCase) resolveBooking(txCtx context.Context, event *domain.ProviderEvent) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		err     error
	)

	if bookingID, ok := event.BookingIDFromMetadata(); ok {
		booking, err = uc.bookingRepo.GetByID(txCtx, bookingID)
	} else {
		uc.logger.Warn("ProcessPaymentEvent: event=%s has no booking_id metadata, looking up by intent", event.ID)
		booking, err = uc.bookingRepo.GetByPaymentIntentID(txCtx, event.PaymentIntentID)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("ProcessPaymentEvent: no booking for event=%s intent=%s", event.ID, event.PaymentIntentID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ProcessPaymentEvent: failed to get booking for event=%s: %v", event.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
