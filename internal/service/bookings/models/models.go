package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Actor              domain.Actor
	Status             string
	CancellationReason *string
	MentorNotes        *string
	MeetingLink        *string
}

// GetMyBookingsRequest запрос на получение бронирований пользователя
type GetMyBookingsRequest struct {
	Actor  domain.Actor
	Status *string
}

// SubmitSummaryRequest отчет ментора о проведенной сессии
type SubmitSummaryRequest struct {
	Actor   domain.Actor
	Summary string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64       `json:"id"`
	MenteeID        int64       `json:"menteeId"`
	MentorID        int64       `json:"mentorId"`
	SessionDate     string      `json:"sessionDate"` // "2024-06-10"
	StartTime       string      `json:"startTime"`   // "10:00"
	EndTime         string      `json:"endTime"`     // "11:00"
	DurationMinutes int         `json:"durationMinutes"`
	Amount          types.Money `json:"amount"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	PaymentIntentID *string     `json:"paymentIntentId,omitempty"`
	Message         *string     `json:"message,omitempty"`
	MeetingLink     *string     `json:"meetingLink,omitempty"`
	MentorNotes     *string     `json:"mentorNotes,omitempty"`

	SessionSummary     *string    `json:"sessionSummary,omitempty"`
	SummarySubmittedAt *time.Time `json:"summarySubmittedAt,omitempty"`
	MenteeConsent      string     `json:"menteeConsent"`
	MenteeConsentAt    *time.Time `json:"menteeConsentAt,omitempty"`
	MenteeConsentNote  *string    `json:"menteeConsentNote,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	consent := b.MenteeConsent
	if consent == "" {
		consent = domain.ConsentUnset
	}

	return &BookingResponse{
		ID:                 b.ID,
		MenteeID:           b.MenteeID,
		MentorID:           b.MentorID,
		SessionDate:        b.SessionDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Amount:             b.Amount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentIntentID:    b.PaymentIntentID,
		Message:            b.Message,
		MeetingLink:        b.MeetingLink,
		MentorNotes:        b.MentorNotes,
		SessionSummary:     b.SessionSummary,
		SummarySubmittedAt: b.SummarySubmittedAt,
		MenteeConsent:      string(consent),
		MenteeConsentAt:    b.MenteeConsentAt,
		MenteeConsentNote:  b.MenteeConsentNote,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		CompletedAt:        b.CompletedAt,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))

	switch s {
	case domain.StatusRequested, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
