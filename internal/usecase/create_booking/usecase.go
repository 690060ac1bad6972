package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	profileClient "github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	blockedDateRepo BlockedDateRepository
	profileClient   ProfileServiceClient
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedDateRepo BlockedDateRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockedDateRepo: blockedDateRepo,
		profileClient:   profileClient,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в транзакции READ COMMITTED под
// advisory-блокировкой (ментор, дата). Каждый запрос после блокировки видит
// зафиксированные бронирования победителя. Exclusion-ограничение в БД - последний рубеж.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: mentee=%d, mentor=%d, date=%s, time=%s, duration=%d",
		req.Actor.UserID, req.MentorID, req.SessionDate.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Только менти может бронировать
	if !req.Actor.IsMentee() {
		uc.logger.Warn("CreateBooking: user id=%d with role=%s is not a mentee", req.Actor.UserID, req.Actor.Role)
		return nil, ErrOnlyMentee
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.SessionDate, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ментора со ставкой
	mentor, err := uc.profileClient.GetMentor(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileClient.ErrMentorNotFound) {
			uc.logger.Warn("CreateBooking: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// 4. Время окончания
	endTime, err := domain.EndTime(req.StartTime, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid duration: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 5. Стоимость
	amount := mentor.PriceFor(req.DurationMinutes)
	sessionDate := domain.TruncateToDate(req.SessionDate)

	var result *domain.Booking

	// 6. Проверки и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 6.1. Сериализуем все попытки бронирования этого ментора на эту дату
		if err := uc.bookingRepo.LockMentorDate(txCtx, req.MentorID, sessionDate); err != nil {
			uc.logger.Error("CreateBooking: failed to lock mentor date: %v", err)
			return fmt.Errorf("%w: failed to lock mentor date: %v", ErrInternal, err)
		}

		// 6.2. Активные бронирования ментора на дату (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveByMentorAndDate(txCtx, req.MentorID, sessionDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.3. Пересечение с существующими
		if existing := findOverlapping(bookings, req.StartTime, endTime); existing != nil {
			uc.logger.Warn("CreateBooking: %s-%s overlaps booking id=%d (%s-%s)",
				req.StartTime, endTime, existing.ID, existing.StartTime, existing.EndTime)
			return fmt.Errorf("%w: overlaps %s-%s", ErrSlotConflict, existing.StartTime, existing.EndTime)
		}

		// 6.4. Блокировка даты ментором
		blocked, err := uc.blockedDateRepo.GetByMentorAndDate(txCtx, req.MentorID, sessionDate)
		if err != nil && !errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			uc.logger.Error("CreateBooking: failed to get blocked date: %v", err)
			return fmt.Errorf("%w: failed to get blocked date: %v", ErrInternal, err)
		}
		if blocked != nil {
			uc.logger.Warn("CreateBooking: mentor id=%d blocked %s", req.MentorID, sessionDate.Format(domain.DateFormat))
			return fmt.Errorf("%w: %w", ErrDateBlocked, blocked.AsError())
		}

		// 6.5. Сохраняем бронирование
		booking := &domain.Booking{
			MenteeID:        req.Actor.UserID,
			MentorID:        req.MentorID,
			SessionDate:     sessionDate,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: req.DurationMinutes,
			Amount:          amount,
			Status:          domain.StatusRequested,
			PaymentStatus:   domain.BookingPaymentPending,
			MenteeConsent:   domain.ConsentUnset,
			Message:         req.Message,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: rejected by overlap constraint: %v", err)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Дедлок или конфликт сериализации с конкурирующей транзакцией: клиенту нужно перезапросить слоты
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization failure for mentor=%d: %v", req.MentorID, err)
			err = ErrSlotConflict
		}
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d amount=%s", result.ID, result.Amount)

	return toResponse(result), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		MenteeID:        b.MenteeID,
		MentorID:        b.MentorID,
		SessionDate:     b.SessionDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Amount:          b.Amount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Message:         b.Message,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
