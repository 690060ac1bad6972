package submit_summary

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
)

type BookingService interface {
	SubmitSummary(ctx context.Context, bookingID int64, req *models.SubmitSummaryRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
