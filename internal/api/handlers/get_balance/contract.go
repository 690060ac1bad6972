package get_balance

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/payments/models"
)

type PaymentService interface {
	GetBalance(ctx context.Context, actor domain.Actor) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
