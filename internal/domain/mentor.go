package domain

import "github.com/m04kA/SMC-MentorshipService/pkg/types"

// MentorProfile данные ментора из сервиса профилей (только чтение)
type MentorProfile struct {
	UserID      int64
	Role        Role
	DisplayName string
	HourlyRate  *types.Money
}

// IsBookable ментор с опубликованной ставкой
func (p *MentorProfile) IsBookable() bool {
	return p.Role == RoleMentor && p.HourlyRate != nil && *p.HourlyRate > 0
}

// PriceFor стоимость сессии: ставка * длительность / 60
func (p *MentorProfile) PriceFor(durationMinutes int) types.Money {
	if p.HourlyRate == nil {
		return 0
	}
	return p.HourlyRate.MulRatio(int64(durationMinutes), MinutesPerHour)
}
