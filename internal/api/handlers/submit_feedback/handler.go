package submit_feedback

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса, оценка от 1 до 5"
	msgInvalidInput       = "оценка от 1 до 5, комментарий не длиннее 2000 символов"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "оценку оставляет только менти сессии"
	msgNotCompleted       = "оценить можно только завершенную сессию"
	msgAlreadyExists      = "оценка по этой сессии уже оставлена"
)

type Handler struct {
	service FeedbackService
	logger  Logger
}

func NewHandler(service FeedbackService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/feedback - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SubmitFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/feedback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), bookingID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/feedback - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, feedback.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/feedback - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, feedback.ErrNotMentee):
			h.logger.Warn("POST /bookings/{id}/feedback - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, feedback.ErrSessionNotCompleted):
			h.logger.Warn("POST /bookings/{id}/feedback - Session not completed: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotCompleted)

		case errors.Is(err, feedback.ErrFeedbackExists):
			h.logger.Warn("POST /bookings/{id}/feedback - Feedback exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /bookings/{id}/feedback - Failed to submit feedback: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/feedback - Feedback submitted: booking_id=%d, rating=%d", bookingID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
