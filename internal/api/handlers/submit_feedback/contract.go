package submit_feedback

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

type FeedbackService interface {
	Submit(ctx context.Context, bookingID int64, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
