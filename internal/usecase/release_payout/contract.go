package release_payout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetSettledByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// BalanceRepository интерфейс репозитория балансов
type BalanceRepository interface {
	ReleasePending(ctx context.Context, mentorID int64, amount types.Money) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик выплат
type Metrics interface {
	IncPayoutReleased()
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
