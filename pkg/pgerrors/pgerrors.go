package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые репозитории транслируют в доменные ошибки
const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// IsUniqueViolation нарушение уникального индекса
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsExclusionViolation нарушение exclusion-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

// IsSerializationFailure конфликт сериализуемых транзакций или дедлок, транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	return hasCode(err, codeSerializationFailure) || hasCode(err, codeDeadlockDetected)
}

// ConstraintName возвращает имя нарушенного ограничения, если ошибка пришла от PostgreSQL
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
