package get_balance

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/payments"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "баланс доступен только менторам"
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

// Handle GET /api/v1/payments/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), actor)
	if err != nil {
		if errors.Is(err, payments.ErrAccessDenied) {
			h.logger.Warn("GET /payments/balance - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /payments/balance - Failed to get balance: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /payments/balance - Balance retrieved: mentor_id=%d", actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, balance)
}
