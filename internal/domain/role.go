package domain

import (
	"errors"
	"strings"
)

// ErrInvalidRole роль не входит в закрытый список
var ErrInvalidRole = errors.New("domain: invalid role")

// Role роль пользователя платформы
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// ParseRole нормализует роль на границе системы (регистр и пробелы не важны)
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMentor:
		return RoleMentor, nil
	case RoleMentee:
		return RoleMentee, nil
	default:
		return "", ErrInvalidRole
	}
}

// Actor аутентифицированный пользователь, от имени которого выполняется операция
type Actor struct {
	UserID int64
	Role   Role
}

// IsMentor актор - ментор
func (a Actor) IsMentor() bool {
	return a.Role == RoleMentor
}

// IsMentee актор - менти
func (a Actor) IsMentee() bool {
	return a.Role == RoleMentee
}
