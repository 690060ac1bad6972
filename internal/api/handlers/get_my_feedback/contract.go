package get_my_feedback

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

type FeedbackService interface {
	GetMine(ctx context.Context, actor domain.Actor) (*models.FeedbackListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
