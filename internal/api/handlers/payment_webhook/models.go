package payment_webhook

import (
	processPaymentEvent "github.com/m04kA/SMC-MentorshipService/internal/usecase/process_payment_event"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// WebhookResponse подтверждение приема события
type WebhookResponse struct {
	Received     bool         `json:"received"`
	EventID      string       `json:"eventId"`
	Status       string       `json:"status"`
	BookingID    *int64       `json:"bookingId,omitempty"`
	PlatformFee  *types.Money `json:"platformFee,omitempty"`
	MentorPayout *types.Money `json:"mentorPayout,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processPaymentEvent.Response) *WebhookResponse {
	result := &WebhookResponse{
		Received: true,
		EventID:  resp.EventID,
		Status:   resp.Status,
	}
	if resp.BookingID > 0 {
		id := resp.BookingID
		result.BookingID = &id
	}
	if resp.Status == processPaymentEvent.StatusProcessed {
		fee, payout := resp.PlatformFee, resp.MentorPayout
		result.PlatformFee = &fee
		result.MentorPayout = &payout
	}
	return result
}
