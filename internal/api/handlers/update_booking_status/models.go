package update_booking_status

import (
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status" validate:"required"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	MentorNotes        *string `json:"mentorNotes,omitempty"`
	MeetingLink        *string `json:"meetingLink,omitempty" validate:"omitempty,url"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor domain.Actor) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Actor:              actor,
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
		MentorNotes:        r.MentorNotes,
		MeetingLink:        r.MeetingLink,
	}
}
