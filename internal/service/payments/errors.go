package payments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrAccessDenied баланс есть только у менторов
	ErrAccessDenied = fmt.Errorf("payments.service: access denied: %w", domain.ErrForbidden)

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = fmt.Errorf("payments.service: payment not found: %w", domain.ErrNotFound)

	// ErrNotParticipant платеж видят только менти и ментор бронирования
	ErrNotParticipant = fmt.Errorf("payments.service: not a participant of the payment: %w", domain.ErrForbidden)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)
