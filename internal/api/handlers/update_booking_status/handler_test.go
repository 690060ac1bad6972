package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
)

type stubService struct {
	gotID  int64
	gotReq *models.UpdateStatusRequest
	err    error
}

func (s *stubService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotID, s.gotReq = bookingID, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: bookingID, Status: req.Status}, nil
}

var mentor = domain.Actor{UserID: 2, Role: domain.RoleMentor}

func patch(svc *stubService, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	req = req.WithContext(middleware.WithActor(req.Context(), mentor))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, req)
	return w
}

func TestHandle_PassesMentorDetails(t *testing.T) {
	svc := &stubService{}
	w := patch(svc, "5", `{"status": "confirmed", "meetingLink": "https://meet.example.com/abc", "mentorNotes": "bring questions"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, mentor, svc.gotReq.Actor)
	require.NotNil(t, svc.gotReq.MeetingLink)
	assert.Equal(t, "https://meet.example.com/abc", *svc.gotReq.MeetingLink)
	assert.Equal(t, "bring questions", *svc.gotReq.MentorNotes)
}

func TestHandle_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name, id, body string
	}{
		{"non numeric id", "abc", `{"status": "confirmed"}`},
		{"missing status", "5", `{}`},
		{"bad link", "5", `{"status": "confirmed", "meetingLink": "not a url"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			w := patch(svc, tt.id, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, svc.gotReq)
		})
	}
}

func TestHandle_MapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", fmt.Errorf("%w: mentee cannot confirm", bookings.ErrAccessDenied), http.StatusForbidden},
		{"invalid transition", fmt.Errorf("%w: completed -> confirmed", bookings.ErrInvalidTransition), http.StatusBadRequest},
		{"invalid status", fmt.Errorf("%w: invalid status", bookings.ErrInvalidInput), http.StatusBadRequest},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := patch(&stubService{err: tt.err}, "5", `{"status": "confirmed"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
