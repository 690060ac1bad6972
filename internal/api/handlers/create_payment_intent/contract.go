package create_payment_intent

import (
	"context"

	createPaymentIntent "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_payment_intent"
)

type CreatePaymentIntentUseCase interface {
	Execute(ctx context.Context, req *createPaymentIntent.Request) (*createPaymentIntent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
