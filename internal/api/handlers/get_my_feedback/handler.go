package get_my_feedback

import (
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

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

// Handle GET /api/v1/feedback/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	list, err := h.service.GetMine(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /feedback/me - Failed to get feedback: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /feedback/me - Feedback retrieved: user_id=%d, role=%s, count=%d",
		actor.UserID, actor.Role, len(list.Feedback))
	handlers.RespondJSON(w, http.StatusOK, list)
}
