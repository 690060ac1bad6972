package get_mentor_feedback

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

type FeedbackService interface {
	GetByMentor(ctx context.Context, mentorID int64) (*models.FeedbackListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
