package delete_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidID    = "некорректный ID блокировки"
	msgNotFound     = "блокировка не найдена"
	msgForbidden    = "доступ запрещен"
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

// Handle DELETE /api/v1/availability/blocked-dates/{blockedDateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathInt64(r, "blockedDateId")
	if err != nil {
		h.logger.Warn("DELETE /availability/blocked-dates/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /availability/blocked-dates/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/blocked-dates/{id} - Access denied: id=%d, user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/blocked-dates/{id} - Failed to delete: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/blocked-dates/{id} - Blocked date removed: id=%d, mentor_id=%d", id, actor.UserID)
	handlers.RespondNoContent(w)
}
