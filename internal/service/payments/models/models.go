package models

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// BalanceResponse баланс ментора
type BalanceResponse struct {
	MentorID         int64       `json:"mentorId"`
	TotalEarned      types.Money `json:"totalEarned"`
	AvailableBalance types.Money `json:"availableBalance"`
	PendingBalance   types.Money `json:"pendingBalance"`
	Withdrawn        types.Money `json:"withdrawn"`
}

// PaymentResponse платеж в истории
type PaymentResponse struct {
	ID               int64       `json:"id"`
	BookingID        int64       `json:"bookingId"`
	PaymentIntentID  string      `json:"paymentIntentId"`
	Amount           types.Money `json:"amount"`
	Currency         string      `json:"currency"`
	Status           string      `json:"status"`
	PlatformFee      types.Money `json:"platformFee"`
	MentorPayout     types.Money `json:"mentorPayout"`
	PayoutReleased   bool        `json:"payoutReleased"`
	PayoutReleasedAt *time.Time  `json:"payoutReleasedAt,omitempty"`
	SucceededAt      *time.Time  `json:"succeededAt,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// PaymentListResponse история платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// FromDomainBalance конвертирует баланс в DTO
func FromDomainBalance(b *domain.MentorBalance) *BalanceResponse {
	return &BalanceResponse{
		MentorID:         b.MentorID,
		TotalEarned:      b.TotalEarned,
		AvailableBalance: b.AvailableBalance,
		PendingBalance:   b.PendingBalance,
		Withdrawn:        b.Withdrawn,
	}
}

// FromDomainPayment конвертирует платеж в DTO
func FromDomainPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		PaymentIntentID:  p.PaymentIntentID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		PlatformFee:      p.PlatformFee,
		MentorPayout:     p.MentorPayout,
		PayoutReleased:   p.PayoutReleased,
		PayoutReleasedAt: p.PayoutReleasedAt,
		SucceededAt:      p.SucceededAt,
		CreatedAt:        p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список платежей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{Payments: make([]PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, FromDomainPayment(p))
	}
	return resp
}
