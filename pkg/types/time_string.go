package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается при разборе строки, не соответствующей формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, если результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time is out of day bounds")
)

// TimeString время суток с точностью до минуты ("HH:MM") без привязки к дате.
// Нулевое значение означает "время не задано".
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeStringFromString разбирает строку "HH:MM" или "HH:MM:SS" (секунды должны быть нулевыми)
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, ErrInvalidTimeFormat
	}

	hours, err := parseTwoDigits(parts[0], 23)
	if err != nil {
		return TimeString{}, err
	}
	minutes, err := parseTwoDigits(parts[1], 59)
	if err != nil {
		return TimeString{}, err
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(strings.SplitN(parts[2], ".", 2)[0])
		if err != nil || seconds != 0 {
			return TimeString{}, ErrInvalidTimeFormat
		}
	}

	return TimeString{minutes: hours*60 + minutes, valid: true}, nil
}

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// MustTimeString разбирает строку и паникует при ошибке. Только для констант и тестов.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(fmt.Sprintf("types.MustTimeString(%q): %v", s, err))
	}
	return t
}

// Minutes количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// AddMinutes прибавляет минуты. Переход через полночь считается ошибкой.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + minutes)
}

// MinutesUntil количество минут от t до other (отрицательное, если other раньше)
func (t TimeString) MinutesUntil(other TimeString) int {
	return other.minutes - t.minutes
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal совпадает с точностью до минуты
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// IsZero время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeFormat
	}
	return nil
}

// OnDate возвращает момент времени t в указанную дату (в локации даты)
func (t TimeString) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, date.Location())
}

// String форматирует время как "HH:MM"
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String() + ":00", nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает строку "HH:MM"
func (t *TimeString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidTimeFormat
	}
	return t.scanString(s)
}

func parseTwoDigits(s string, max int) (int, error) {
	if len(s) != 2 {
		return 0, ErrInvalidTimeFormat
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > max {
		return 0, ErrInvalidTimeFormat
	}
	return v, nil
}
