package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	GetByMentor(ctx context.Context, mentorID int64, filter domain.AvailabilityFilter) ([]*domain.AvailabilityRule, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Create(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error)
	GetByMentorInRange(ctx context.Context, mentorID int64, from, to *time.Time) ([]*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository активные бронирования, которые держат правило
type BookingRepository interface {
	GetActiveByMentorFrom(ctx context.Context, mentorID int64, from time.Time) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
