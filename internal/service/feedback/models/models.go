package models

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// SubmitFeedbackRequest оценка сессии
type SubmitFeedbackRequest struct {
	Actor   domain.Actor
	Rating  int
	Comment *string
}

// FeedbackResponse сохраненная оценка
type FeedbackResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	MentorID  int64     `json:"mentorId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackListResponse список оценок
type FeedbackListResponse struct {
	Feedback []*FeedbackResponse `json:"feedback"`
}

// RatingsResponse сводка оценок ментора
type RatingsResponse struct {
	MentorID      int64          `json:"mentorId"`
	AverageRating float64        `json:"averageRating"`
	TotalReviews  int            `json:"totalReviews"`
	Breakdown     map[string]int `json:"breakdown"` // "1".."5" -> количество
}

// FromDomainFeedback конвертирует оценку в DTO
func FromDomainFeedback(f *domain.SessionFeedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:        f.ID,
		BookingID: f.BookingID,
		MentorID:  f.MentorID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

// FromDomainFeedbackList конвертирует список оценок в DTO
func FromDomainFeedbackList(list []*domain.SessionFeedback) *FeedbackListResponse {
	resp := &FeedbackListResponse{Feedback: make([]*FeedbackResponse, 0, len(list))}
	for _, f := range list {
		resp.Feedback = append(resp.Feedback, FromDomainFeedback(f))
	}
	return resp
}
