package get_payment_history

import (
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

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

// Handle GET /api/v1/payments/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	history, err := h.service.GetHistory(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /payments/history - Failed to get history: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /payments/history - History retrieved: user_id=%d, role=%s, count=%d",
		actor.UserID, actor.Role, len(history.Payments))
	handlers.RespondJSON(w, http.StatusOK, history)
}
