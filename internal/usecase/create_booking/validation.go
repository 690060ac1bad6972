package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.MentorID <= 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	if req.MentorID == req.Actor.UserID {
		return fmt.Errorf("%w: cannot book a session with yourself", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.SessionDate.IsZero() {
		return fmt.Errorf("%w: session_date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	}

	if req.Message != nil && utf8.RuneCountInString(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(sessionDate, now time.Time) error {
	if domain.TruncateToDate(sessionDate).Before(domain.TruncateToDate(now)) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, sessionDate.Format(domain.DateFormat))
	}
	return nil
}

// findOverlapping возвращает первое активное бронирование, пересекающееся с [start, end)
func findOverlapping(bookings []*domain.Booking, start, end types.TimeString) *domain.Booking {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
