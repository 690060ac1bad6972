package delete_availability_rule

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

type AvailabilityService interface {
	DeleteRule(ctx context.Context, ruleID int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
