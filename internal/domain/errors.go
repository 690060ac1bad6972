package domain

import (
	"errors"
	"fmt"
	"time"
)

// Таксономия ошибок ядра. Слои выше оборачивают их через %w.
var (
	// ErrForbidden роль или владение не позволяют выполнить операцию
	ErrForbidden = errors.New("domain: forbidden")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("domain: not found")

	// ErrConflict пересечение слотов, дубликат и т.п.
	ErrConflict = errors.New("domain: conflict")

	// ErrInvalidTransition недопустимый переход статуса бронирования
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrConsentRequired выплата невозможна без согласия менти
	ErrConsentRequired = errors.New("domain: mentee consent required")

	// ErrBlocked ментор недоступен в эту дату
	ErrBlocked = errors.New("domain: mentor is unavailable on this date")

	// ErrInvalidDuration длительность вне диапазона [30, 240] минут или сессия переходит через полночь
	ErrInvalidDuration = errors.New("domain: invalid session duration")

	// ErrInvalidTimeRange время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("domain: invalid time range")

	// ErrSummaryRequired согласие нельзя дать до отчета ментора
	ErrSummaryRequired = errors.New("domain: session summary required")

	// ErrInvalidRating оценка вне диапазона 1..5
	ErrInvalidRating = errors.New("domain: invalid rating")
)

// BlockedError дата заблокирована ментором. Несет сохраненную причину.
type BlockedError struct {
	Date   time.Time
	Reason *string
}

// Error реализует error
func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrBlocked.Error(), e.Date.Format(DateFormat), e.ReasonOrDefault())
}

// Unwrap позволяет errors.Is(err, ErrBlocked)
func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

// ReasonOrDefault причина блокировки или текст по умолчанию
func (e *BlockedError) ReasonOrDefault() string {
	if e.Reason == nil || *e.Reason == "" {
		return "No reason provided"
	}
	return *e.Reason
}
