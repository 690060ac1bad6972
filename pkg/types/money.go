package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMoney возвращается при разборе некорректной денежной суммы
var ErrInvalidMoney = errors.New("invalid money amount")

// Money денежная сумма в минорных единицах валюты (пенсы, центы).
// В БД хранится как NUMERIC(12,2) в основных единицах, в JSON отдается числом с двумя знаками.
type Money int64

// NewMoneyFromMinor создает сумму из минорных единиц
func NewMoneyFromMinor(minor int64) Money {
	return Money(minor)
}

// NewMoneyFromFloat создает сумму из значения в основных единицах (округление до копейки)
func NewMoneyFromFloat(major float64) Money {
	return Money(math.Round(major * 100))
}

// ParseMoney разбирает десятичную строку в основных единицах: "50", "50.5", "50.00", "-1.25"
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMoney
	}

	negative := false
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" || (hasFrac && fracPart == "") {
		return 0, ErrInvalidMoney
	}
	if len(fracPart) > 2 {
		// NUMERIC(12,2) не отдает больше двух знаков; лишние знаки допускаем только нулевыми
		if strings.Trim(fracPart[2:], "0") != "" {
			return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidMoney, s)
		}
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	minor := units*100 + cents
	if negative {
		minor = -minor
	}
	return Money(minor), nil
}

// Minor сумма в минорных единицах
func (m Money) Minor() int64 {
	return int64(m)
}

// Float64 сумма в основных единицах. Только для отображения.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// IsNegative сумма меньше нуля
func (m Money) IsNegative() bool {
	return m < 0
}

// MulRatio умножает сумму на дробь num/den с банковским округлением до минорной единицы
func (m Money) MulRatio(num, den int64) Money {
	return Money(divRoundHalfEven(int64(m)*num, den))
}

// String форматирует сумму как "50.00"
func (m Money) String() string {
	minor := int64(m)
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// Scan реализует sql.Scanner для колонок NUMERIC
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		parsed, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = NewMoneyFromFloat(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T into Money", ErrInvalidMoney, src)
	}
}

// Value реализует driver.Valuer, в БД пишется десятичная строка
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// MarshalJSON сериализует сумму числом с двумя знаками после запятой
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON принимает число или строку в основных единицах
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidMoney
		}
		raw = s
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// divRoundHalfEven целочисленное деление с округлением половины к четному
func divRoundHalfEven(n, d int64) int64 {
	if d == 0 {
		panic("types: division by zero")
	}
	if d < 0 {
		n, d = -n, -d
	}

	sign := int64(1)
	if n < 0 {
		sign = -1
		n = -n
	}

	q, r := n/d, n%d
	switch {
	case 2*r > d:
		q++
	case 2*r == d && q%2 == 1:
		q++
	}
	return sign * q
}
