package domain

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// MentorBalance баланс ментора. Меняется только при проведении платежей и выплат.
type MentorBalance struct {
	MentorID         int64
	TotalEarned      types.Money
	AvailableBalance types.Money
	PendingBalance   types.Money
	Withdrawn        types.Money
	UpdatedAt        time.Time
}

// EmptyBalance нулевой баланс для ментора без проведенных платежей
func EmptyBalance(mentorID int64) *MentorBalance {
	return &MentorBalance{MentorID: mentorID}
}
