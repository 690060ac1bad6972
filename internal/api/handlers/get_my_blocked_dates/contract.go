package get_my_blocked_dates

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetMyBlockedDates(ctx context.Context, actor domain.Actor) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
