package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrOnlyMentee возвращается, когда бронирует не менти
	ErrOnlyMentee = fmt.Errorf("create_booking: only mentees can book sessions: %w", domain.ErrForbidden)

	// ErrMentorNotFound возвращается, когда ментор не найден или не опубликовал ставку
	ErrMentorNotFound = fmt.Errorf("create_booking: mentor not found: %w", domain.ErrNotFound)

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием ментора
	ErrSlotConflict = fmt.Errorf("create_booking: time slot is already booked: %w", domain.ErrConflict)

	// ErrDateBlocked возвращается, когда ментор заблокировал дату. Причина доступна через errors.As(*domain.BlockedError).
	ErrDateBlocked = fmt.Errorf("create_booking: %w", domain.ErrBlocked)

	// ErrInvalidDuration возвращается при длительности вне [30, 240] минут или переходе через полночь
	ErrInvalidDuration = fmt.Errorf("create_booking: %w", domain.ErrInvalidDuration)

	// ErrInvalidDate возвращается при бронировании на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
