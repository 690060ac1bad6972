package blockeddate

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = errors.New("blockeddate.repository: blocked date not found")

	// ErrAlreadyBlocked возвращается при повторной блокировке той же даты
	ErrAlreadyBlocked = errors.New("blockeddate.repository: date already blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockeddate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockeddate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockeddate.repository: failed to scan row")
)
