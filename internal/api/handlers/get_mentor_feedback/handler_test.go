package get_mentor_feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
)

type stubService struct {
	resp        *models.FeedbackListResponse
	err         error
	gotMentorID int64
}

func (s *stubService) GetByMentor(_ context.Context, mentorID int64) (*models.FeedbackListResponse, error) {
	s.gotMentorID = mentorID
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	t.Run("lists feedback", func(t *testing.T) {
		svc := &stubService{resp: &models.FeedbackListResponse{Feedback: []*models.FeedbackResponse{
			{ID: 1, BookingID: 5, MentorID: 2, Rating: 5},
		}}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/2/feedback", nil)
		req = mux.SetURLVars(req, map[string]string{"mentorId": "2"})
		w := httptest.NewRecorder()

		NewHandler(svc, logger.NewNop()).Handle(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(2), svc.gotMentorID)
		var body models.FeedbackListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Feedback, 1)
		assert.Equal(t, 5, body.Feedback[0].Rating)
	})

	t.Run("invalid mentor id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/abc/feedback", nil)
		req = mux.SetURLVars(req, map[string]string{"mentorId": "abc"})
		w := httptest.NewRecorder()

		NewHandler(&stubService{}, logger.NewNop()).Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/2/feedback", nil)
		req = mux.SetURLVars(req, map[string]string{"mentorId": "2"})
		w := httptest.NewRecorder()

		NewHandler(&stubService{err: errors.New("db down")}, logger.NewNop()).Handle(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
