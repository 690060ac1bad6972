package release_payout

import (
	"time"

	releasePayout "github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// ReleasePayoutResponse HTTP response model
type ReleasePayoutResponse struct {
	BookingID        int64       `json:"bookingId"`
	PaymentID        int64       `json:"paymentId"`
	MentorPayout     types.Money `json:"mentorPayout"`
	Released         bool        `json:"released"`
	PayoutReleasedAt *string     `json:"payoutReleasedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *releasePayout.Response) *ReleasePayoutResponse {
	result := &ReleasePayoutResponse{
		BookingID:    resp.BookingID,
		PaymentID:    resp.PaymentID,
		MentorPayout: resp.MentorPayout,
		Released:     resp.Released,
	}
	if resp.PayoutReleasedAt != nil {
		at := resp.PayoutReleasedAt.Format(time.RFC3339)
		result.PayoutReleasedAt = &at
	}
	return result
}
