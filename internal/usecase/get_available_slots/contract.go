package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByMentorInRange активные (requested, confirmed) бронирования ментора в диапазоне дат
	GetActiveByMentorInRange(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByMentor(ctx context.Context, mentorID int64, filter domain.AvailabilityFilter) ([]*domain.AvailabilityRule, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	GetByMentorInRange(ctx context.Context, mentorID int64, from, to *time.Time) ([]*domain.BlockedDate, error)
}

// ProfileServiceClient интерфейс клиента сервиса профилей
type ProfileServiceClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*domain.MentorProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
