package stripeprovider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
		Timeout:       2 * time.Second,
		BaseURL:       baseURL,
	}, logger.NewNop())
}

func succeededPayload(eventID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": "payment_intent.succeeded",
		"api_version": "2020-08-27",
		"data": {
			"object": {
				"id": "pi_1",
				"object": "payment_intent",
				"amount": 5000,
				"currency": "gbp",
				"metadata": {"booking_id": "42"}
			}
		}
	}`, eventID))
}

func TestParseEvent(t *testing.T) {
	client := newTestClient("")
	payload := succeededPayload("evt_1")

	t.Run("valid signature", func(t *testing.T) {
		event, err := client.ParseEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
		require.NoError(t, err)

		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, domain.EventPaymentIntentSucceeded, event.Type)
		assert.Equal(t, "pi_1", event.PaymentIntentID)
		assert.Equal(t, types.NewMoneyFromMinor(5000), event.Amount)
		assert.Equal(t, "gbp", event.Currency)

		bookingID, ok := event.BookingIDFromMetadata()
		require.True(t, ok)
		assert.Equal(t, int64(42), bookingID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := client.ParseEvent(payload, signPayload(payload, "whsec_other", time.Now()))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := client.ParseEvent(payload, "")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload(payload, testWebhookSecret, time.Now())
		tampered := succeededPayload("evt_2")
		_, err := client.ParseEvent(tampered, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired timestamp", func(t *testing.T) {
		_, err := client.ParseEvent(payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("signed garbage", func(t *testing.T) {
		garbage := []byte(`not json`)
		_, err := client.ParseEvent(garbage, signPayload(garbage, testWebhookSecret, time.Now()))
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})

	t.Run("unrelated event type", func(t *testing.T) {
		other := []byte(`{"id":"evt_9","object":"event","type":"customer.created","data":{"object":{"id":"cus_1","object":"customer"}}}`)
		event, err := client.ParseEvent(other, signPayload(other, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, "customer.created", event.Type)
		assert.Empty(t, event.PaymentIntentID)
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	var gotForm url.Values
	var gotIdempotencyKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":5000,"currency":"gbp","client_secret":"pi_123_secret","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), IntentRequest{
		BookingID:      42,
		MenteeID:       1,
		MentorID:       2,
		Amount:         types.NewMoneyFromMinor(5000),
		Currency:       "gbp",
		IdempotencyKey: "booking-42",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, types.NewMoneyFromMinor(5000), intent.Amount)
	assert.Equal(t, "5000", gotForm.Get("amount"))
	assert.Equal(t, "gbp", gotForm.Get("currency"))
	assert.Equal(t, "42", gotForm.Get("metadata[booking_id]"))
	assert.Equal(t, "booking-42", gotIdempotencyKey)
}

func TestCreatePaymentIntent_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"try later"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.CreatePaymentIntent(context.Background(), IntentRequest{
		BookingID: 42,
		Amount:    types.NewMoneyFromMinor(5000),
		Currency:  "gbp",
	})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
