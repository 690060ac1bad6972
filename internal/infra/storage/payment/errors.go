package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicatePayment возвращается при нарушении уникальности intent, события или проведенного платежа по бронированию
	ErrDuplicatePayment = errors.New("payment.repository: duplicate payment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
