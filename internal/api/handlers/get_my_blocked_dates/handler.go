package get_my_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "заблокированные даты есть только у менторов"
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

// Handle GET /api/v1/availability/blocked-dates/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	dates, err := h.service.GetMyBlockedDates(r.Context(), actor)
	if err != nil {
		if errors.Is(err, availability.ErrAccessDenied) {
			h.logger.Warn("GET /availability/blocked-dates/me - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /availability/blocked-dates/me - Failed to get blocked dates: mentor_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/blocked-dates/me - Blocked dates retrieved: mentor_id=%d, count=%d",
		actor.UserID, len(dates.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, dates)
}
