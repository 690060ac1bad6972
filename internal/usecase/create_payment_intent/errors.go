package create_payment_intent

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("create_payment_intent: booking not found: %w", domain.ErrNotFound)

	// ErrNotMentee возвращается, когда оплачивает не менти бронирования
	ErrNotMentee = fmt.Errorf("create_payment_intent: only the booking mentee can pay: %w", domain.ErrForbidden)

	// ErrBookingNotConfirmed возвращается, когда ментор еще не подтвердил сессию
	ErrBookingNotConfirmed = fmt.Errorf("create_payment_intent: booking must be confirmed before payment: %w", domain.ErrInvalidTransition)

	// ErrAlreadyPaid возвращается, когда бронирование уже оплачено
	ErrAlreadyPaid = fmt.Errorf("create_payment_intent: booking is already paid: %w", domain.ErrConflict)

	// ErrProviderUnavailable провайдер не создал намерение, локально ничего не сохранено
	ErrProviderUnavailable = errors.New("create_payment_intent: payment provider unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_intent: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_intent: internal error")
)
