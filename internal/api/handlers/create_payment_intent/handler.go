package create_payment_intent

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	createPaymentIntent "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_payment_intent"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "оплатить сессию может только ее менти"
	msgNotConfirmed        = "оплата доступна после подтверждения сессии ментором"
	msgAlreadyPaid         = "сессия уже оплачена"
	msgProviderUnavailable = "платежный провайдер недоступен, повторите попытку позже"
)

type Handler struct {
	useCase CreatePaymentIntentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentIntentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/intent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreatePaymentIntentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/intent - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createPaymentIntent.Request{
		Actor:     actor,
		BookingID: req.BookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, createPaymentIntent.ErrInvalidInput):
			h.logger.Warn("POST /payments/intent - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createPaymentIntent.ErrBookingNotFound):
			h.logger.Warn("POST /payments/intent - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createPaymentIntent.ErrNotMentee):
			h.logger.Warn("POST /payments/intent - Access denied: booking_id=%d, user_id=%d", req.BookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPaymentIntent.ErrBookingNotConfirmed):
			h.logger.Warn("POST /payments/intent - Booking not confirmed: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgNotConfirmed)

		case errors.Is(err, createPaymentIntent.ErrAlreadyPaid):
			h.logger.Warn("POST /payments/intent - Already paid: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, createPaymentIntent.ErrProviderUnavailable):
			h.logger.Error("POST /payments/intent - Provider unavailable: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /payments/intent - Failed to create payment intent: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/intent - Payment intent created: booking_id=%d, payment_id=%d, intent=%s",
		result.BookingID, result.PaymentID, result.PaymentIntentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
