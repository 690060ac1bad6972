package process_payment_event

import "github.com/m04kA/SMC-MentorshipService/pkg/types"

// Результаты обработки события
const (
	StatusProcessed               = "processed"
	StatusAlreadyProcessed        = "already_processed"
	StatusPaymentAlreadyProcessed = "payment_already_processed"
	StatusBookingAlreadyPaid      = "booking_already_paid"
	StatusPaymentFailed           = "payment_failed"
	StatusIgnored                 = "ignored"
)

// Request сырое тело webhook и заголовок подписи
type Request struct {
	Payload         []byte
	SignatureHeader string
}

// Response результат обработки. Любой результат означает, что событие принято.
type Response struct {
	EventID      string
	EventType    string
	Status       string
	BookingID    int64
	PlatformFee  types.Money
	MentorPayout types.Money
}
