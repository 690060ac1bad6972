package profileservice

import "errors"

var (
	// ErrMentorNotFound профиль не найден, не является ментором или без опубликованной ставки
	ErrMentorNotFound = errors.New("profileservice client: mentor not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")

	// ErrUnavailable сервис профилей недоступен (таймаут, 5xx)
	ErrUnavailable = errors.New("profileservice client: service unavailable")
)
