package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	createBooking "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты сессии, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgOnlyMentee         = "бронировать сессии могут только менти"
	msgMentorNotFound     = "ментор не найден"
	msgSlotConflict       = "выбранное время уже занято, обновите список свободных слотов"
	msgDateBlocked        = "ментор недоступен в выбранную дату"
	msgInvalidDuration    = "длительность сессии должна быть от 30 до 240 минут и не переходить через полночь"
	msgInvalidBookingDate = "нельзя забронировать прошедшую дату"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var blocked *domain.BlockedError

		switch {
		case errors.Is(err, createBooking.ErrOnlyMentee):
			h.logger.Warn("POST /bookings - Not a mentee: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgOnlyMentee)

		case errors.Is(err, createBooking.ErrMentorNotFound):
			h.logger.Warn("POST /bookings - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, mentor_id=%d, date=%s, time=%s",
				actor.UserID, req.MentorID, req.SessionDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.As(err, &blocked):
			h.logger.Warn("POST /bookings - Date blocked: mentor_id=%d, date=%s", req.MentorID, req.SessionDate)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgDateBlocked, blocked.ReasonOrDefault())

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: mentor_id=%d, date=%s", req.MentorID, req.SessionDate)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: duration=%d", req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.SessionDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, mentor_id=%d, error=%v",
				actor.UserID, req.MentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, mentee_id=%d, mentor_id=%d",
		result.ID, actor.UserID, req.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
