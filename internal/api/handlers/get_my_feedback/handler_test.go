package get_my_feedback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
)

type stubService struct {
	gotActor domain.Actor
}

func (s *stubService) GetMine(_ context.Context, actor domain.Actor) (*models.FeedbackListResponse, error) {
	s.gotActor = actor
	return &models.FeedbackListResponse{Feedback: []*models.FeedbackResponse{}}, nil
}

func TestHandle(t *testing.T) {
	actor := domain.Actor{UserID: 1, Role: domain.RoleMentee}
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/me", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	w := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, actor, svc.gotActor)
	assert.JSONEq(t, `{"feedback":[]}`, w.Body.String())

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/feedback/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
