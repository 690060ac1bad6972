package stripeprovider

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Config параметры подключения к Stripe
type Config struct {
	SecretKey        string
	WebhookSecret    string
	Timeout          time.Duration
	WebhookTolerance time.Duration // 0 = значение stripe-go по умолчанию (5 минут)
	BaseURL          string        // пусто = api.stripe.com
}

// IntentRequest параметры нового намерения оплаты
type IntentRequest struct {
	BookingID      int64
	MenteeID       int64
	MentorID       int64
	Amount         types.Money
	Currency       string
	IdempotencyKey string
}

// Intent созданное намерение оплаты
type Intent struct {
	ID           string
	ClientSecret string
	Amount       types.Money
	Currency     string
	Status       string
}
