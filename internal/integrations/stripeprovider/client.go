package stripeprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Client клиент платежного провайдера Stripe
type Client struct {
	api              *client.API
	webhookSecret    string
	webhookTolerance time.Duration
	log              Logger
}

// NewClient создает клиент с ограниченным таймаутом и без сетевых повторов:
// повтор делает вызывающая сторона, идемпотентность обеспечивает ключ запроса.
func NewClient(cfg Config, log Logger) *Client {
	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     leveledLogger{log: log},
	}
	if cfg.BaseURL != "" {
		backendConfig.URL = stripe.String(cfg.BaseURL)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	}

	return &Client{
		api:              client.New(cfg.SecretKey, backends),
		webhookSecret:    cfg.WebhookSecret,
		webhookTolerance: cfg.WebhookTolerance,
		log:              log,
	}
}

// CreatePaymentIntent создает PaymentIntent на сумму в минорных единицах.
// В метаданные кладутся id бронирования и участников, по ним webhook находит бронирование.
func (c *Client) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount.Minor()),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatInt(req.BookingID, 10))
	params.AddMetadata("mentee_id", strconv.FormatInt(req.MenteeID, 10))
	params.AddMetadata("mentor_id", strconv.FormatInt(req.MentorID, 10))

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	params.SetIdempotencyKey(idempotencyKey)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("Stripe: failed to create payment intent for booking_id=%d: %v", req.BookingID, err)
		return nil, classifyError(err)
	}

	c.log.Info("Stripe: created payment intent id=%s for booking_id=%d amount=%s",
		pi.ID, req.BookingID, req.Amount)

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       types.NewMoneyFromMinor(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// ParseEvent проверяет подпись и разбирает событие.
// До успешной проверки подписи тело не интерпретируется.
func (c *Client) ParseEvent(payload []byte, signatureHeader string) (*domain.ProviderEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                c.webhookTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("%w: event id and type are required", ErrMalformedEvent)
	}

	result := &domain.ProviderEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	// Интересуют только события payment_intent.*, у остальных объект другой формы
	if event.Data == nil || !isPaymentIntentEvent(result.Type) {
		return result, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", ErrMalformedEvent, err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("%w: payment intent id is missing", ErrMalformedEvent)
	}

	result.PaymentIntentID = pi.ID
	result.Amount = types.NewMoneyFromMinor(pi.Amount)
	result.Currency = string(pi.Currency)
	result.Metadata = pi.Metadata
	return result, nil
}

func isPaymentIntentEvent(eventType string) bool {
	return eventType == domain.EventPaymentIntentSucceeded || eventType == domain.EventPaymentIntentFailed
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrTooOld)
}

// classifyError отделяет временные сбои провайдера от отказов
func classifyError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError || stripeErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %s", ErrProviderUnavailable, stripeErr.Msg)
		}
		if stripeErr.HTTPStatusCode > 0 {
			return fmt.Errorf("%w: %s", ErrProviderRejected, stripeErr.Msg)
		}
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
