package create_blocked_date

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
	msgInvalidInput       = "некорректная дата (YYYY-MM-DD) или слишком длинная причина"
	msgForbidden          = "блокировать даты могут только менторы"
	msgAlreadyBlocked     = "дата уже заблокирована"
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

// Handle POST /api/v1/availability/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blocked, err := h.service.CreateBlockedDate(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /availability/blocked-dates - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability/blocked-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrAlreadyBlocked):
			h.logger.Warn("POST /availability/blocked-dates - Already blocked: mentor_id=%d, date=%s", actor.UserID, req.Date)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /availability/blocked-dates - Failed to block date: mentor_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/blocked-dates - Date blocked: id=%d, mentor_id=%d, date=%s",
		blocked.ID, actor.UserID, blocked.Date)
	handlers.RespondJSON(w, http.StatusCreated, blocked)
}
