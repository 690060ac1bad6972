package domain

import (
	"fmt"
	"time"
)

// SessionFeedback оценка сессии от менти
type SessionFeedback struct {
	ID        int64
	BookingID int64
	MenteeID  int64
	MentorID  int64
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

// ValidateRating оценка от 1 до 5
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be %d-%d, got %d", ErrInvalidRating, MinRating, MaxRating, rating)
	}
	return nil
}

// RatingSummary агрегированные оценки ментора
type RatingSummary struct {
	MentorID  int64
	Total     int
	Average   float64
	Breakdown map[int]int // звезды -> количество
}

// NewRatingSummary считает среднее по количеству оценок каждой звезды
func NewRatingSummary(mentorID int64, counts map[int]int) *RatingSummary {
	summary := &RatingSummary{MentorID: mentorID, Breakdown: make(map[int]int, MaxRating)}

	sum := 0
	for stars := MinRating; stars <= MaxRating; stars++ {
		n := counts[stars]
		summary.Breakdown[stars] = n
		summary.Total += n
		sum += stars * n
	}
	if summary.Total > 0 {
		summary.Average = float64(sum) / float64(summary.Total)
	}
	return summary
}
