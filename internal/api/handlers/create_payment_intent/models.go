package create_payment_intent

import (
	createPaymentIntent "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_payment_intent"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// CreatePaymentIntentRequest HTTP request model
type CreatePaymentIntentRequest struct {
	BookingID int64 `json:"bookingId" validate:"required,gt=0"`
}

// PaymentIntentResponse HTTP response model
type PaymentIntentResponse struct {
	PaymentID       int64       `json:"paymentId"`
	BookingID       int64       `json:"bookingId"`
	PaymentIntentID string      `json:"paymentIntentId"`
	ClientSecret    string      `json:"clientSecret"`
	Amount          types.Money `json:"amount"`
	Currency        string      `json:"currency"`
	Status          string      `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPaymentIntent.Response) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		PaymentID:       resp.PaymentID,
		BookingID:       resp.BookingID,
		PaymentIntentID: resp.PaymentIntentID,
		ClientSecret:    resp.ClientSecret,
		Amount:          resp.Amount,
		Currency:        resp.Currency,
		Status:          resp.Status,
	}
}
