package release_payout

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("release_payout: booking not found: %w", domain.ErrNotFound)

	// ErrNotMentor возвращается, когда выплату запрашивает не ментор сессии
	ErrNotMentor = fmt.Errorf("release_payout: only the booking mentor can release payout: %w", domain.ErrForbidden)

	// ErrConsentRequired возвращается, когда менти не одобрил отчет
	ErrConsentRequired = fmt.Errorf("release_payout: %w", domain.ErrConsentRequired)

	// ErrPaymentNotSettled возвращается, когда у бронирования нет проведенного платежа
	ErrPaymentNotSettled = fmt.Errorf("release_payout: booking has no settled payment: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("release_payout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_payout: internal error")
)
