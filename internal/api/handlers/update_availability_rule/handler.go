package update_availability_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса, поле isActive обязательно"
	msgNotFound           = "правило не найдено"
	msgForbidden          = "доступ запрещен"
	msgOverlap            = "правило пересекается с активным правилом этого дня"
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

// Handle PATCH /api/v1/availability/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("PATCH /availability/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.SetRuleActive(r.Context(), ruleID, &models.SetRuleActiveRequest{
		Actor:    actor,
		IsActive: *req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRuleNotFound):
			h.logger.Warn("PATCH /availability/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PATCH /availability/{id} - Access denied: rule_id=%d, user_id=%d", ruleID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrRuleOverlap):
			h.logger.Warn("PATCH /availability/{id} - Overlap on reactivation: rule_id=%d", ruleID)
			handlers.RespondConflict(w, msgOverlap)

		default:
			h.logger.Error("PATCH /availability/{id} - Failed to update rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/{id} - Rule updated: rule_id=%d, is_active=%t", ruleID, rule.IsActive)
	handlers.RespondJSON(w, http.StatusOK, rule)
}
