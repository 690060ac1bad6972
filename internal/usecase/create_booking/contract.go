package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockMentorDate(ctx context.Context, mentorID int64, date time.Time) error
	GetActiveByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	GetByMentorAndDate(ctx context.Context, mentorID int64, date time.Time) (*domain.BlockedDate, error)
}

// ProfileServiceClient интерфейс клиента сервиса профилей
type ProfileServiceClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*domain.MentorProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
