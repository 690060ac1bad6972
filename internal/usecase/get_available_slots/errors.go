package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = fmt.Errorf("get_available_slots: mentor not found: %w", domain.ErrNotFound)

	// ErrInvalidDateRange возвращается при пустом или перевернутом диапазоне дат
	ErrInvalidDateRange = errors.New("get_available_slots: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
