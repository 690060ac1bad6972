package record_consent

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	recordConsent "github.com/m04kA/SMC-MentorshipService/internal/usecase/record_mentee_consent"
)

// RecordConsentRequest HTTP request model
type RecordConsentRequest struct {
	Approved *bool   `json:"approved" validate:"required"`
	Note     *string `json:"note,omitempty"`
}

// ConsentResponse HTTP response model
type ConsentResponse struct {
	BookingID       int64   `json:"bookingId"`
	MenteeConsent   string  `json:"menteeConsent"`
	MenteeConsentAt *string `json:"menteeConsentAt,omitempty"`
	PayoutReleased  bool    `json:"payoutReleased"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordConsentRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *recordConsent.Request {
	return &recordConsent.Request{
		Actor:     actor,
		BookingID: bookingID,
		Approved:  *r.Approved,
		Note:      r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordConsent.Response) *ConsentResponse {
	result := &ConsentResponse{
		BookingID:      resp.BookingID,
		MenteeConsent:  resp.MenteeConsent,
		PayoutReleased: resp.PayoutReleased,
	}
	if resp.MenteeConsentAt != nil {
		at := resp.MenteeConsentAt.Format(time.RFC3339)
		result.MenteeConsentAt = &at
	}
	return result
}
