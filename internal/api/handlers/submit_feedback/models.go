package submit_feedback

import (
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

// SubmitFeedbackRequest HTTP request model
type SubmitFeedbackRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SubmitFeedbackRequest) ToServiceRequest(actor domain.Actor) *models.SubmitFeedbackRequest {
	return &models.SubmitFeedbackRequest{
		Actor:   actor,
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}
