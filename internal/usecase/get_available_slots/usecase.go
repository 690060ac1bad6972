package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
)

// UseCase use case для получения свободных слотов ментора
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	blockedDateRepo  BlockedDateRepository
	profileClient    ProfileServiceClient
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	blockedDateRepo BlockedDateRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		blockedDateRepo:  blockedDateRepo,
		profileClient:    profileClient,
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Только чтение: результат пересчитывается на каждый вызов, ничего не кешируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d, range=%s..%s",
		req.MentorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	start := domain.TruncateToDate(req.StartDate)
	end := domain.TruncateToDate(req.EndDate)

	// 2. Проверяем ментора
	if _, err := uc.profileClient.GetMentor(ctx, req.MentorID); err != nil {
		if errors.Is(err, profileservice.ErrMentorNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor id=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor id=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	// 3. Активные правила ментора
	rules, err := uc.availabilityRepo.GetByMentor(ctx, req.MentorID, domain.AvailabilityFilter{ActiveOnly: true})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: mentor id=%d has no active availability", req.MentorID)
		return &Response{MentorID: req.MentorID, Slots: []Slot{}}, nil
	}

	// 4. Заблокированные даты в диапазоне
	blocked, err := uc.blockedDateRepo.GetByMentorInRange(ctx, req.MentorID, &start, &end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	// 5. Активные бронирования в диапазоне
	bookings, err := uc.bookingRepo.GetActiveByMentorInRange(ctx, req.MentorID, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Даты диапазона
	dates, err := expandDates(start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to expand dates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 7. Собираем свободные окна
	slots := materialize(dates, rules, blocked, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for mentor=%d, days=%d, blocked=%d, bookings=%d",
		len(slots), req.MentorID, len(dates), len(blocked), len(bookings))

	return &Response{
		MentorID: req.MentorID,
		Slots:    slots,
	}, nil
}
