package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	MentorID int64          `json:"mentorId"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse свободное окно ментора
type SlotResponse struct {
	Date            string `json:"date"`      // "2024-06-10"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "12:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest формирует запрос use case из параметров пути и query
func ToUseCaseRequest(mentorID int64, startDateStr, endDateStr string) (*getAvailableSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}

	return &getAvailableSlots.Request{
		MentorID:  mentorID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Date:            s.Date.Format(domain.DateFormat),
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &SlotsResponse{
		MentorID: resp.MentorID,
		Slots:    slots,
	}
}
