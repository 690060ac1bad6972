package get_my_availability_rules

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetMyRules(ctx context.Context, actor domain.Actor) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
