package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	processPaymentEvent "github.com/m04kA/SMC-MentorshipService/internal/usecase/process_payment_event"
)

const (
	// HeaderSignature заголовок подписи Stripe
	HeaderSignature = "Stripe-Signature"

	// maxPayloadBytes Stripe не присылает события больше 64 КБ
	maxPayloadBytes = 65536
)

const (
	msgUnreadableBody   = "не удалось прочитать тело запроса"
	msgInvalidSignature = "некорректная подпись события"
	msgMalformedEvent   = "некорректное событие"
	msgBookingNotFound  = "бронирование события не найдено"
)

type Handler struct {
	useCase ProcessPaymentEventUseCase
	logger  Logger
}

func NewHandler(useCase ProcessPaymentEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Тело читается как есть: подпись считается по сырым байтам.
// 4xx и 5xx заставляют провайдера повторить доставку с тем же id события.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processPaymentEvent.Request{
		Payload:         payload,
		SignatureHeader: r.Header.Get(HeaderSignature),
	})
	if err != nil {
		switch {
		case errors.Is(err, processPaymentEvent.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, processPaymentEvent.ErrMalformedEvent):
			h.logger.Warn("POST /payments/webhook - Malformed event: %v", err)
			handlers.RespondBadRequest(w, msgMalformedEvent)

		case errors.Is(err, processPaymentEvent.ErrBookingNotFound):
			h.logger.Error("POST /payments/webhook - Booking not found for event: %v", err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Event accepted: event_id=%s, type=%s, status=%s",
		result.EventID, result.EventType, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
