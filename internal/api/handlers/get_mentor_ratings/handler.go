package get_mentor_ratings

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

// Handle GET /api/v1/mentors/{mentorId}/ratings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/ratings - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	ratings, err := h.service.GetRatings(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/ratings - Failed to get ratings: mentor_id=%d, error=%v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/ratings - Ratings retrieved: mentor_id=%d, total=%d", mentorID, ratings.TotalReviews)
	handlers.RespondJSON(w, http.StatusOK, ratings)
}
