package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// CommissionRate комиссия платформы в базисных пунктах (2000 = 20%)
type CommissionRate int64

// NewCommissionRateFromPercent переводит процент из конфигурации в базисные пункты
func NewCommissionRateFromPercent(percent float64) (CommissionRate, error) {
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf("commission percent must be within [0, 100], got %v", percent)
	}
	return CommissionRate(types.NewMoneyFromFloat(percent).Minor()), nil
}

// Split делит сумму на комиссию платформы и выплату ментору.
// Комиссия округляется один раз (половина к четному) до минорной единицы,
// выплата - остаток, поэтому fee + payout == amount всегда.
func (r CommissionRate) Split(amount types.Money) (fee, payout types.Money) {
	fee = amount.MulRatio(int64(r), BasisPointsPerWhole)
	payout = amount - fee
	return fee, payout
}

// Percent процент для отображения
func (r CommissionRate) Percent() float64 {
	return float64(r) / 100
}

// Payment попытка оплаты бронирования через провайдера
type Payment struct {
	ID               int64
	BookingID        int64
	MenteeID         int64
	MentorID         int64
	PaymentIntentID  string
	ProviderEventID  *string
	Amount           types.Money
	Currency         string
	Status           PaymentStatus
	PlatformFee      types.Money
	MentorPayout     types.Money
	CommissionPaid   bool
	PayoutReleased   bool
	PayoutReleasedAt *time.Time
	WebhookProcessed bool
	SucceededAt      *time.Time
	FailedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Settle проводит платеж по событию провайдера: считает комиссию и фиксирует событие.
// Неуспешный платеж тоже можно провести: провайдер допускает повтор оплаты по тому же намерению.
func (p *Payment) Settle(eventID string, amount types.Money, currency string, rate CommissionRate, now time.Time) {
	fee, payout := rate.Split(amount)
	ts := now

	p.Amount = amount
	if currency != "" {
		p.Currency = currency
	}
	p.Status = PaymentSucceeded
	p.PlatformFee = fee
	p.MentorPayout = payout
	p.CommissionPaid = true
	p.WebhookProcessed = true
	p.ProviderEventID = &eventID
	p.SucceededAt = &ts
}

// MarkFailed провайдер сообщил о неуспешной оплате.
// Платеж не считается обработанным: успешное событие по тому же намерению еще может прийти.
func (p *Payment) MarkFailed(eventID string, now time.Time) {
	ts := now
	p.Status = PaymentFailed
	p.ProviderEventID = &eventID
	p.FailedAt = &ts
}

// IsFailed последняя попытка оплаты неуспешна
func (p *Payment) IsFailed() bool {
	return p.Status == PaymentFailed
}

// Reopen возвращает неуспешный платеж в pending перед повторной попыткой.
// Возвращает false, если платеж не в статусе failed.
func (p *Payment) Reopen() bool {
	if !p.IsFailed() {
		return false
	}
	p.Status = PaymentPending
	p.FailedAt = nil
	return true
}

// IsSettled платеж успешно проведен
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentSucceeded && p.WebhookProcessed
}

// ReleasePayout отмечает выплату доступной ментору.
// Возвращает false, если выплата уже была разблокирована.
func (p *Payment) ReleasePayout(now time.Time) bool {
	if p.PayoutReleased {
		return false
	}
	ts := now
	p.PayoutReleased = true
	p.PayoutReleasedAt = &ts
	return true
}

// ProviderEvent проверенное и разобранное событие платежного провайдера
type ProviderEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
	Amount          types.Money
	Currency        string
	Metadata        map[string]string
}

// Типы событий, которые обрабатывает ядро
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
)

// BookingIDFromMetadata id бронирования из метаданных события
func (e *ProviderEvent) BookingIDFromMetadata() (int64, bool) {
	raw, ok := e.Metadata["booking_id"]
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// WebhookEvent отметка о принятом событии провайдера (ключ идемпотентности)
type WebhookEvent struct {
	ID         int64
	EventID    string
	EventType  string
	ReceivedAt time.Time
}
