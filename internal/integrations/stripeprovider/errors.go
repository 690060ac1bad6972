package stripeprovider

import "errors"

var (
	// ErrInvalidSignature подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("stripeprovider: invalid webhook signature")

	// ErrMalformedEvent тело события не удалось разобрать
	ErrMalformedEvent = errors.New("stripeprovider: malformed event payload")

	// ErrProviderUnavailable провайдер не ответил или ответил ошибкой, запрос можно повторить
	ErrProviderUnavailable = errors.New("stripeprovider: provider unavailable")

	// ErrProviderRejected провайдер отклонил запрос
	ErrProviderRejected = errors.New("stripeprovider: request rejected by provider")
)
