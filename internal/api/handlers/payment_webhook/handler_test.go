package payment_webhook

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	processPaymentEvent "github.com/m04kA/SMC-MentorshipService/internal/usecase/process_payment_event"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type stubUseCase struct {
	got  *processPaymentEvent.Request
	resp *processPaymentEvent.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *processPaymentEvent.Request) (*processPaymentEvent.Response, error) {
	s.got = req
	return s.resp, s.err
}

func post(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
	req.Header.Set(HeaderSignature, "t=1,v1=abc")
	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, req)
	return w
}

func TestHandle_PassesRawPayloadAndSignature(t *testing.T) {
	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`
	uc := &stubUseCase{resp: &processPaymentEvent.Response{
		EventID:      "evt_1",
		EventType:    "payment_intent.succeeded",
		Status:       processPaymentEvent.StatusProcessed,
		BookingID:    10,
		PlatformFee:  types.NewMoneyFromMinor(1000),
		MentorPayout: types.NewMoneyFromMinor(4000),
	}}

	w := post(uc, payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, payload, string(uc.got.Payload))
	assert.Equal(t, "t=1,v1=abc", uc.got.SignatureHeader)
	assert.JSONEq(t,
		`{"received":true,"eventId":"evt_1","status":"processed","bookingId":10,"platformFee":10.00,"mentorPayout":40.00}`,
		w.Body.String())
}

func TestHandle_DuplicateIsAcknowledged(t *testing.T) {
	uc := &stubUseCase{resp: &processPaymentEvent.Response{
		EventID: "evt_1",
		Status:  processPaymentEvent.StatusAlreadyProcessed,
	}}

	w := post(uc, `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true,"eventId":"evt_1","status":"already_processed"}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad signature", fmt.Errorf("%w: mismatch", processPaymentEvent.ErrInvalidSignature), http.StatusBadRequest},
		{"malformed", fmt.Errorf("%w: no id", processPaymentEvent.ErrMalformedEvent), http.StatusBadRequest},
		{"unknown booking", processPaymentEvent.ErrBookingNotFound, http.StatusNotFound},
		{"db down", fmt.Errorf("%w: conn refused", processPaymentEvent.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(&stubUseCase{err: tt.err}, `{}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
