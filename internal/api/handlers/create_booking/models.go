package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	createBooking "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MentorID        int64   `json:"mentorId" validate:"required,gt=0"`
	SessionDate     string  `json:"sessionDate" validate:"required"` // "2024-06-10"
	StartTime       string  `json:"startTime" validate:"required"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Message         *string `json:"message,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64       `json:"id"`
	MenteeID        int64       `json:"menteeId"`
	MentorID        int64       `json:"mentorId"`
	SessionDate     string      `json:"sessionDate"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	DurationMinutes int         `json:"durationMinutes"`
	Amount          types.Money `json:"amount"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	Message         *string     `json:"message,omitempty"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

var (
	errInvalidDate = errors.New("invalid session date")
	errInvalidTime = errors.New("invalid start time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	sessionDate, err := time.Parse(domain.DateFormat, r.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Actor:           actor,
		MentorID:        r.MentorID,
		SessionDate:     sessionDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Message:         r.Message,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MenteeID:        resp.MenteeID,
		MentorID:        resp.MentorID,
		SessionDate:     resp.SessionDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Amount:          resp.Amount,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Message:         resp.Message,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
