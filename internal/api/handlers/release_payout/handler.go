package release_payout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	releasePayout "github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "разблокировать выплату может только ментор сессии"
	msgConsentRequired  = "выплата возможна только после одобрения отчета менти"
	msgNotSettled       = "по бронированию нет проведенного платежа"
)

type Handler struct {
	useCase ReleasePayoutUseCase
	logger  Logger
}

func NewHandler(useCase ReleasePayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payout/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payout/release - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &releasePayout.Request{Actor: actor, BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, releasePayout.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payout/release - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, releasePayout.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payout/release - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, releasePayout.ErrNotMentor):
			h.logger.Warn("POST /bookings/{id}/payout/release - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, releasePayout.ErrConsentRequired):
			h.logger.Warn("POST /bookings/{id}/payout/release - Consent required: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConsentRequired)

		case errors.Is(err, releasePayout.ErrPaymentNotSettled):
			h.logger.Warn("POST /bookings/{id}/payout/release - Payment not settled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotSettled)

		default:
			h.logger.Error("POST /bookings/{id}/payout/release - Failed to release payout: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payout/release - Payout processed: booking_id=%d, released=%t, payout=%s",
		bookingID, result.Released, result.MentorPayout)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
