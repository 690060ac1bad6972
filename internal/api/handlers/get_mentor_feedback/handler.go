package get_mentor_feedback

import (
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
)

const msgInvalidMentorID = "некорректный ID ментора"

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

// Handle GET /api/v1/mentors/{mentorId}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/feedback - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	list, err := h.service.GetByMentor(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/feedback - Failed to get feedback: mentor_id=%d, error=%v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/feedback - Feedback retrieved: mentor_id=%d, count=%d", mentorID, len(list.Feedback))
	handlers.RespondJSON(w, http.StatusOK, list)
}
