package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// AvailabilityRule еженедельное окно доступности ментора
type AvailabilityRule struct {
	ID        int64
	MentorID  int64
	DayOfWeek int // 0 = понедельник ... 6 = воскресенье
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет день недели и порядок времени
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be 0-6, got %d", ErrInvalidTimeRange, r.DayOfWeek)
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidTimeRange)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, r.StartTime, r.EndTime)
	}
	return nil
}

// DurationMinutes длительность окна
func (r *AvailabilityRule) DurationMinutes() int {
	return r.StartTime.MinutesUntil(r.EndTime)
}

// Overlaps пересекается ли окно с другим окном того же дня недели
func (r *AvailabilityRule) Overlaps(other *AvailabilityRule) bool {
	return r.DayOfWeek == other.DayOfWeek &&
		IntervalsOverlap(r.StartTime, r.EndTime, other.StartTime, other.EndTime)
}

// OverlapsBooking попадает ли бронирование в это окно (по дню недели и времени)
func (r *AvailabilityRule) OverlapsBooking(b *Booking) bool {
	return Weekday(b.SessionDate) == r.DayOfWeek &&
		IntervalsOverlap(r.StartTime, r.EndTime, b.StartTime, b.EndTime)
}

// AvailabilityFilter фильтр правил ментора
type AvailabilityFilter struct {
	DayOfWeek  *int // nil - все дни недели
	ActiveOnly bool
}

// BlockedDate разовая блокировка даты ментором
type BlockedDate struct {
	ID        int64
	MentorID  int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// AsError превращает блокировку в ошибку с причиной
func (d *BlockedDate) AsError() error {
	return &BlockedError{Date: d.Date, Reason: d.Reason}
}
