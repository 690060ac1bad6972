package create_availability_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректное правило: время в формате HH:MM, начало раньше конца"
	msgForbidden          = "правила доступности создают только менторы"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.CreateRule(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /availability - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, availability.ErrRuleOverlap):
			h.logger.Warn("POST /availability - Rule overlap: mentor_id=%d, day=%d, %s-%s",
				actor.UserID, *req.DayOfWeek, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgOverlap)

		default:
			h.logger.Error("POST /availability - Failed to create rule: mentor_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Rule created: rule_id=%d, mentor_id=%d", rule.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}
