package get_available_slots

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// expandDates все календарные даты диапазона [start, end] включительно
func expandDates(start, end time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: domain.TruncateToDate(start),
		Until:   domain.TruncateToDate(end),
	})
	if err != nil {
		return nil, fmt.Errorf("build daily recurrence: %w", err)
	}
	return rule.All(), nil
}

// materialize раскладывает правила доступности по датам диапазона.
// Заблокированные даты пропускаются, окно правила исключается целиком,
// если пересекается хотя бы с одним активным бронированием в эту дату.
// Окна не дробятся. Порядок: по дате, внутри даты в порядке rules.
func materialize(
	dates []time.Time,
	rules []*domain.AvailabilityRule,
	blocked []*domain.BlockedDate,
	bookings []*domain.Booking,
) []Slot {
	blockedSet := make(map[string]struct{}, len(blocked))
	for _, b := range blocked {
		blockedSet[dateKey(b.Date)] = struct{}{}
	}

	rulesByDay := make(map[int][]*domain.AvailabilityRule)
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		rulesByDay[r.DayOfWeek] = append(rulesByDay[r.DayOfWeek], r)
	}

	bookingsByDate := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		key := dateKey(b.SessionDate)
		bookingsByDate[key] = append(bookingsByDate[key], b)
	}

	slots := make([]Slot, 0)
	for _, date := range dates {
		key := dateKey(date)
		if _, ok := blockedSet[key]; ok {
			continue
		}

		for _, rule := range rulesByDay[domain.Weekday(date)] {
			if isBooked(rule, bookingsByDate[key]) {
				continue
			}
			slots = append(slots, Slot{
				Date:            domain.TruncateToDate(date),
				StartTime:       rule.StartTime,
				EndTime:         rule.EndTime,
				DurationMinutes: rule.DurationMinutes(),
			})
		}
	}

	return slots
}

// isBooked пересекается ли окно правила с одним из бронирований даты
func isBooked(rule *domain.AvailabilityRule, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Overlaps(rule.StartTime, rule.EndTime) {
			return true
		}
	}
	return false
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}
