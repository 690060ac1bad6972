package update_availability_rule

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetRuleActive(ctx context.Context, ruleID int64, req *models.SetRuleActiveRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
