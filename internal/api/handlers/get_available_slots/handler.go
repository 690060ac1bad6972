package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID  = "некорректный ID ментора"
	msgMissingDates     = "параметры start_date и end_date обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат (не более 90 дней, конец не раньше начала)"
	msgMentorNotFound   = "ментор не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/slots
// Query params: start_date, end_date (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /mentors/{id}/slots - Missing dates: mentor_id=%d", mentorID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(mentorID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /mentors/{id}/slots - Invalid date range: mentor_id=%d, start=%s, end=%s",
				mentorID, startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMentorID)

		default:
			h.logger.Error("GET /mentors/{id}/slots - Failed to get slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /mentors/{id}/slots - Slots retrieved successfully: mentor_id=%d, slots_count=%d",
		mentorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
