package delete_availability_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidRuleID = "некорректный ID правила"
	msgNotFound      = "правило не найдено"
	msgForbidden     = "доступ запрещен"
	msgRuleInUse     = "на правило есть предстоящие бронирования, выключите его вместо удаления"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.DeleteRule(r.Context(), ruleID, actor); err != nil {
		switch {
		case errors.Is(err, availability.ErrRuleNotFound):
			h.logger.Warn("DELETE /availability/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: rule_id=%d, user_id=%d", ruleID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrRuleInUse):
			h.logger.Warn("DELETE /availability/{id} - Rule in use: rule_id=%d", ruleID)
			handlers.RespondConflict(w, msgRuleInUse)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Rule deleted: rule_id=%d, mentor_id=%d", ruleID, actor.UserID)
	handlers.RespondNoContent(w)
}
