package create_blocked_date

import (
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

// CreateBlockedDateRequest HTTP request model
type CreateBlockedDateRequest struct {
	Date   string  `json:"date" validate:"required"` // "2024-06-12"
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockedDateRequest) ToServiceRequest(actor domain.Actor) *models.CreateBlockedDateRequest {
	return &models.CreateBlockedDateRequest{
		Actor:  actor,
		Date:   r.Date,
		Reason: r.Reason,
	}
}
