package create_payment_intent

import (
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Request модель запроса на создание намерения оплаты
type Request struct {
	Actor     domain.Actor // Аутентифицированный пользователь
	BookingID int64        // ID бронирования
}

// Response данные для завершения оплаты на клиенте
type Response struct {
	PaymentID       int64
	BookingID       int64
	PaymentIntentID string
	ClientSecret    string
	Amount          types.Money
	Currency        string
	Status          string
}
