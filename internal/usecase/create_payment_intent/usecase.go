package create_payment_intent

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/stripeprovider"
)

// UseCase use case создания намерения оплаты бронирования
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	provider    PaymentProvider
	txManager   TransactionManager
	currency    string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	provider PaymentProvider,
	txManager TransactionManager,
	currency string,
	logger Logger,
) *UseCase {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		provider:    provider,
		txManager:   txManager,
		currency:    currency,
		logger:      logger,
	}
}

// Execute создает намерение у провайдера и только после этого пишет платеж в БД.
// Ошибка провайдера не оставляет локальных изменений.
// Статус бронирования не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentIntent: user=%d, booking=%d", req.Actor.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePaymentIntent: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование и предварительные проверки (без транзакции: впереди сетевой вызов)
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if err := validateBookingPayable(booking, req.Actor); err != nil {
		uc.logger.Warn("CreatePaymentIntent: booking id=%d is not payable: %v", booking.ID, err)
		return nil, err
	}

	// 3. Намерение у провайдера. Ключ идемпотентности привязан к бронированию и сумме,
	// повторный запрос вернет то же намерение.
	intent, err := uc.provider.CreatePaymentIntent(ctx, stripeprovider.IntentRequest{
		BookingID:      booking.ID,
		MenteeID:       booking.MenteeID,
		MentorID:       booking.MentorID,
		Amount:         booking.Amount,
		Currency:       uc.currency,
		IdempotencyKey: fmt.Sprintf("booking-%d-intent-%d", booking.ID, booking.Amount.Minor()),
	})
	if err != nil {
		uc.logger.Error("CreatePaymentIntent: provider failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	var payment *domain.Payment

	// 4. Платеж и ссылка на намерение в бронировании - одна транзакция
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем бронирование под блокировкой
		locked, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if err := validateBookingPayable(locked, req.Actor); err != nil {
			uc.logger.Warn("CreatePaymentIntent: booking id=%d changed while creating intent: %v", locked.ID, err)
			return err
		}

		// 4.2. Повторный запрос с тем же ключом: платеж уже записан
		existing, err := uc.paymentRepo.GetByIntentID(txCtx, intent.ID)
		if err == nil {
			uc.logger.Info("CreatePaymentIntent: payment for intent=%s already recorded id=%d", intent.ID, existing.ID)

			// Неуспешная попытка: намерение то же, платеж снова ждет оплаты
			if existing.Reopen() {
				if err := uc.paymentRepo.Update(txCtx, existing); err != nil {
					uc.logger.Error("CreatePaymentIntent: failed to reopen payment id=%d: %v", existing.ID, err)
					return fmt.Errorf("%w: failed to reopen payment: %v", ErrInternal, err)
				}
				uc.logger.Info("CreatePaymentIntent: failed payment id=%d reopened for retry", existing.ID)
			}

			payment = existing
			return nil
		}
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("CreatePaymentIntent: failed to look up payment by intent=%s: %v", intent.ID, err)
			return fmt.Errorf("%w: failed to look up payment: %v", ErrInternal, err)
		}

		// 4.3. Новый платеж в статусе pending
		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:       locked.ID,
			MenteeID:        locked.MenteeID,
			MentorID:        locked.MentorID,
			PaymentIntentID: intent.ID,
			Amount:          locked.Amount,
			Currency:        uc.currency,
			Status:          domain.PaymentPending,
		})
		if err != nil {
			uc.logger.Error("CreatePaymentIntent: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		// 4.4. Запоминаем намерение в бронировании (резервный путь поиска для webhook)
		locked.AttachPaymentIntent(intent.ID)
		if err := uc.bookingRepo.Update(txCtx, locked); err != nil {
			uc.logger.Error("CreatePaymentIntent: failed to attach intent to booking id=%d: %v", locked.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		payment = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreatePaymentIntent: payment id=%d intent=%s amount=%s %s",
		payment.ID, intent.ID, payment.Amount, payment.Currency)

	return &Response{
		PaymentID:       payment.ID,
		BookingID:       payment.BookingID,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Status:          string(payment.Status),
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreatePaymentIntent: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreatePaymentIntent: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}
