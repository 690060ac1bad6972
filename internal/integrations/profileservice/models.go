package profileservice

import "github.com/m04kA/SMC-MentorshipService/pkg/types"

// Mentor модель профиля из ProfileService
type Mentor struct {
	UserID      int64        `json:"user_id"`
	Role        string       `json:"role"`
	DisplayName string       `json:"display_name"`
	HourlyRate  *types.Money `json:"hourly_rate"` // Ставка за час в основных единицах валюты
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
