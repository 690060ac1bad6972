package record_consent

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	recordConsent "github.com/m04kA/SMC-MentorshipService/internal/usecase/record_mentee_consent"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса, поле approved обязательно"
	msgInvalidInput       = "комментарий слишком длинный"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "ответить на отчет может только менти сессии"
	msgSummaryRequired    = "ментор еще не оставил отчет о сессии"
	msgAlreadyResponded   = "ответ на отчет уже записан"
)

type Handler struct {
	useCase RecordConsentUseCase
	logger  Logger
}

func NewHandler(useCase RecordConsentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/consent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/consent - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RecordConsentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/consent - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, recordConsent.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/consent - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, recordConsent.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/consent - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/consent - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrSummaryRequired):
			h.logger.Warn("POST /bookings/{id}/consent - Summary missing: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgSummaryRequired)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings/{id}/consent - Already responded: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyResponded)

		default:
			h.logger.Error("POST /bookings/{id}/consent - Failed to record consent: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/consent - Consent recorded: booking_id=%d, consent=%s, payout_released=%t",
		bookingID, result.MenteeConsent, result.PayoutReleased)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
