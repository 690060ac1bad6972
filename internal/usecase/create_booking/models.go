package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor           domain.Actor     // Аутентифицированный пользователь
	MentorID        int64            // ID ментора
	SessionDate     time.Time        // Дата сессии (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность 30-240 минут
	Message         *string          // Сообщение ментору (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	MenteeID        int64
	MentorID        int64
	SessionDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Amount          types.Money // ставка * длительность / 60
	Status          string
	PaymentStatus   string
	Message         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
