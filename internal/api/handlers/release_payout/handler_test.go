package release_payout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	releasePayout "github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

type stubUseCase struct {
	resp *releasePayout.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, _ *releasePayout.Request) (*releasePayout.Response, error) {
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		uc         *stubUseCase
		wantStatus int
	}{
		{"released", &stubUseCase{resp: &releasePayout.Response{BookingID: 5, PaymentID: 1, MentorPayout: types.NewMoneyFromMinor(4000), Released: true}}, http.StatusOK},
		{"consent missing", &stubUseCase{err: releasePayout.ErrConsentRequired}, http.StatusConflict},
		{"not settled", &stubUseCase{err: releasePayout.ErrPaymentNotSettled}, http.StatusConflict},
		{"not mentor", &stubUseCase{err: releasePayout.ErrNotMentor}, http.StatusForbidden},
		{"not found", &stubUseCase{err: releasePayout.ErrBookingNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/5/payout/release", nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
			req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 2, Role: domain.RoleMentor}))
			w := httptest.NewRecorder()

			NewHandler(tt.uc, logger.NewNop()).Handle(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
