package release_payout

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Request модель запроса на разблокировку выплаты
type Request struct {
	Actor     domain.Actor // Аутентифицированный пользователь
	BookingID int64        // ID бронирования
}

// Response результат разблокировки
type Response struct {
	BookingID        int64
	PaymentID        int64
	MentorPayout     types.Money
	Released         bool // false - выплата уже была разблокирована ранее
	PayoutReleasedAt *time.Time
}
