package record_mentee_consent

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// Request ответ менти на отчет ментора
type Request struct {
	Actor     domain.Actor // Аутентифицированный пользователь
	BookingID int64        // ID бронирования
	Approved  bool         // true - одобрить, false - отклонить
	Note      *string      // Комментарий менти (опционально)
}

// Response модель ответа
type Response struct {
	BookingID       int64
	MenteeConsent   string
	MenteeConsentAt *time.Time
	PayoutReleased  bool // выплата разблокирована в этой же транзакции
}
