package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = fmt.Errorf("availability.service: rule not found: %w", domain.ErrNotFound)

	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = fmt.Errorf("availability.service: blocked date not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда действие доступно только ментору-владельцу
	ErrAccessDenied = fmt.Errorf("availability.service: access denied: %w", domain.ErrForbidden)

	// ErrRuleOverlap новое или включаемое правило пересекается с активным правилом того же дня
	ErrRuleOverlap = fmt.Errorf("availability.service: rule overlaps an active rule: %w", domain.ErrConflict)

	// ErrRuleInUse на правило приходятся будущие активные бронирования; правило нужно выключить, а не удалять
	ErrRuleInUse = fmt.Errorf("availability.service: rule has upcoming bookings, deactivate it instead: %w", domain.ErrConflict)

	// ErrAlreadyBlocked дата уже заблокирована
	ErrAlreadyBlocked = fmt.Errorf("availability.service: date already blocked: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
