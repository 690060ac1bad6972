package feedback

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// FeedbackRepository интерфейс репозитория оценок
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.SessionFeedback) (*domain.SessionFeedback, error)
	GetRatingCounts(ctx context.Context, mentorID int64) (map[int]int, error)
	GetByMentor(ctx context.Context, mentorID int64) ([]*domain.SessionFeedback, error)
	GetByMentee(ctx context.Context, menteeID int64) ([]*domain.SessionFeedback, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
