package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования или у него не та роль
	ErrAccessDenied = fmt.Errorf("bookings.service: access denied: %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("bookings.service: invalid transition: %w", domain.ErrInvalidTransition)

	// ErrSummaryLocked отчет нельзя менять после ответа менти
	ErrSummaryLocked = fmt.Errorf("bookings.service: summary locked: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)

// translateDomainError переводит ошибку доменной модели в ошибку сервиса, сохраняя детали
func translateDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrConflict):
		return fmt.Errorf("%w: %v", ErrSummaryLocked, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
