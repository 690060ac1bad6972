package create_payment_intent

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/stripeprovider"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByIntentID(ctx context.Context, paymentIntentID string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// PaymentProvider интерфейс клиента платежного провайдера
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, req stripeprovider.IntentRequest) (*stripeprovider.Intent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
