package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда exclusion-ограничение отклонило пересекающееся бронирование
	ErrSlotConflict = errors.New("booking.repository: overlapping booking exists")

	// ErrDuplicatePaymentIntent возвращается, когда payment intent уже привязан к другому бронированию
	ErrDuplicatePaymentIntent = errors.New("booking.repository: payment intent already attached")

	// ErrTransaction возвращается, когда операция требует активной транзакции
	ErrTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
