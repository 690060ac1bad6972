package create_blocked_date

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
