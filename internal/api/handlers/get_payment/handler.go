package get_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/payments"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidPaymentID = "некорректный ID платежа"
	msgNotFound         = "платеж не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	paymentID, err := handlers.PathInt64(r, "paymentId")
	if err != nil {
		h.logger.Warn("GET /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	payment, err := h.service.GetByID(r.Context(), actor, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /payments/{id} - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrNotParticipant):
			h.logger.Warn("GET /payments/{id} - Access denied: payment_id=%d, user_id=%d", paymentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/{id} - Failed to get payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/{id} - Payment retrieved: payment_id=%d, status=%s", paymentID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, payment)
}
