package delete_blocked_date

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

type AvailabilityService interface {
	DeleteBlockedDate(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
