package payments

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// BalanceRepository интерфейс репозитория балансов
type BalanceRepository interface {
	GetByMentor(ctx context.Context, mentorID int64) (*domain.MentorBalance, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByParticipant(ctx context.Context, userID int64, role domain.Role) ([]*domain.Payment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
