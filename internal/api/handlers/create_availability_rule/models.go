package create_availability_rule

import (
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"` // 0 = понедельник
	StartTime string `json:"startTime" validate:"required"`             // "09:00"
	EndTime   string `json:"endTime" validate:"required"`               // "12:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest(actor domain.Actor) *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		Actor:     actor,
		DayOfWeek: *r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
