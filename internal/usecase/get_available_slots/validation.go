package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidDateRange)
	}

	start := domain.TruncateToDate(req.StartDate)
	end := domain.TruncateToDate(req.EndDate)

	if end.Before(start) {
		return fmt.Errorf("%w: end_date %s is before start_date %s",
			ErrInvalidDateRange, end.Format(domain.DateFormat), start.Format(domain.DateFormat))
	}

	// Диапазон ограничен, чтобы ответ оставался небольшим
	if end.Sub(start) > domain.MaxSlotsRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidDateRange, domain.MaxSlotsRangeDays)
	}

	return nil
}
