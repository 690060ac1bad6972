package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	feedbackRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/feedback"
	"github.com/m04kA/SMC-MentorshipService/internal/service/feedback/models"
)

// Service оценки сессий
type Service struct {
	bookingRepo  BookingRepository
	feedbackRepo FeedbackRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса оценок
func NewService(bookingRepo BookingRepository, feedbackRepo FeedbackRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// Submit менти оценивает завершенную сессию, один раз
func (s *Service) Submit(ctx context.Context, bookingID int64, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error) {
	s.logger.Info("Submit: feedback for booking id=%d by user=%d, rating=%d", bookingID, req.Actor.UserID, req.Rating)

	if err := domain.ValidateRating(req.Rating); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxFeedbackCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxFeedbackCommentLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Submit: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	if !booking.IsMentee(req.Actor) {
		s.logger.Warn("Submit: user=%d is not the mentee of booking id=%d", req.Actor.UserID, bookingID)
		return nil, ErrNotMentee
	}
	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("Submit: booking id=%d is %s, not completed", bookingID, booking.Status)
		return nil, ErrSessionNotCompleted
	}

	created, err := s.feedbackRepo.Create(ctx, &domain.SessionFeedback{
		BookingID: booking.ID,
		MenteeID:  booking.MenteeID,
		MentorID:  booking.MentorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackExists) {
			s.logger.Warn("Submit: feedback for booking id=%d already exists", bookingID)
			return nil, ErrFeedbackExists
		}
		s.logger.Error("Submit: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFeedback(created), nil
}

// GetRatings средняя оценка ментора и распределение по звездам
func (s *Service) GetRatings(ctx context.Context, mentorID int64) (*models.RatingsResponse, error) {
	counts, err := s.feedbackRepo.GetRatingCounts(ctx, mentorID)
	if err != nil {
		s.logger.Error("GetRatings: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetRatings - repository error: %v", ErrInternal, err)
	}

	summary := domain.NewRatingSummary(mentorID, counts)

	resp := &models.RatingsResponse{
		MentorID:      summary.MentorID,
		AverageRating: math.Round(summary.Average*100) / 100,
		TotalReviews:  summary.Total,
		Breakdown:     make(map[string]int, len(summary.Breakdown)),
	}
	for stars, n := range summary.Breakdown {
		resp.Breakdown[strconv.Itoa(stars)] = n
	}
	return resp, nil
}

// GetByMentor публичный список оценок ментора
func (s *Service) GetByMentor(ctx context.Context, mentorID int64) (*models.FeedbackListResponse, error) {
	list, err := s.feedbackRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("GetByMentor: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: GetByMentor - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainFeedbackList(list), nil
}

// GetMine оценки пользователя: оставленные менти или полученные ментором
func (s *Service) GetMine(ctx context.Context, actor domain.Actor) (*models.FeedbackListResponse, error) {
	var (
		list []*domain.SessionFeedback
		err  error
	)
	if actor.IsMentor() {
		list, err = s.feedbackRepo.GetByMentor(ctx, actor.UserID)
	} else {
		list, err = s.feedbackRepo.GetByMentee(ctx, actor.UserID)
	}
	if err != nil {
		s.logger.Error("GetMine: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMine: fetched %d feedback entries for user=%d, role=%s", len(list), actor.UserID, actor.Role)
	return models.FromDomainFeedbackList(list), nil
}
