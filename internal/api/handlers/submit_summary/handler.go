package submit_summary

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSummary     = "отчет должен содержать от 1 до 5000 символов"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "отчет о сессии может оставить только ментор"
	msgInvalidStatus      = "отчет можно оставить только по подтвержденной или завершенной сессии"
	msgSummaryLocked      = "менти уже ответил на отчет, изменить его нельзя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/summary
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/summary - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SubmitSummaryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/summary - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.SubmitSummary(r.Context(), bookingID, &models.SubmitSummaryRequest{
		Actor:   actor,
		Summary: req.Summary,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/summary - Invalid summary: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidSummary)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/summary - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/summary - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/summary - Wrong booking status: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrSummaryLocked):
			h.logger.Warn("POST /bookings/{id}/summary - Summary locked: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSummaryLocked)

		default:
			h.logger.Error("POST /bookings/{id}/summary - Failed to submit summary: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/summary - Summary submitted: booking_id=%d, mentor_id=%d", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
