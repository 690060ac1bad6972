package get_mentor_ratings

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

type FeedbackService interface {
	GetRatings(ctx context.Context, mentorID int64) (*models.RatingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
