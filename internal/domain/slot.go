package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// OpenSlot свободный интервал ментора в конкретную дату
type OpenSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// EndTime вычисляет время окончания сессии: start + duration.
// Длительность должна быть в диапазоне [MinSessionDurationMinutes, MaxSessionDurationMinutes],
// сессия не может переходить через полночь.
func EndTime(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	if durationMinutes < MinSessionDurationMinutes || durationMinutes > MaxSessionDurationMinutes {
		return types.TimeString{}, fmt.Errorf("%w: %d minutes, allowed %d-%d",
			ErrInvalidDuration, durationMinutes, MinSessionDurationMinutes, MaxSessionDurationMinutes)
	}
	if start.IsZero() {
		return types.TimeString{}, fmt.Errorf("%w: start time is not set", ErrInvalidTimeRange)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: session starting at %s must end before midnight",
			ErrInvalidDuration, start)
	}
	return end, nil
}

// IntervalsOverlap проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB).
// Единственный предикат пересечения: используется при создании бронирования,
// при создании правил доступности и при генерации свободных слотов.
//
// Примеры:
// - 10:00-11:00 и 10:30-11:30 → пересекаются
// - 10:00-11:00 и 11:00-12:00 → НЕ пересекаются (граничат)
// - 10:00-11:00 и 10:00-11:00 → пересекаются
func IntervalsOverlap(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && endA.IsAfter(startB)
}

// Weekday день недели в нумерации платформы: 0 = понедельник ... 6 = воскресенье
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// TruncateToDate отбрасывает время, оставляя календарную дату в UTC
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
