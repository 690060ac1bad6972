package process_payment_event

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrInvalidSignature подпись не прошла проверку, событие не принято
	ErrInvalidSignature = errors.New("process_payment_event: invalid signature")

	// ErrMalformedEvent тело события не разобрано, событие не принято
	ErrMalformedEvent = errors.New("process_payment_event: malformed event")

	// ErrBookingNotFound бронирование события не найдено; провайдер повторит доставку
	ErrBookingNotFound = fmt.Errorf("process_payment_event: booking not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_payment_event: internal error")
)
