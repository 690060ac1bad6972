package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Request модель запроса свободных слотов ментора
type Request struct {
	MentorID  int64     // ID ментора
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	MentorID int64  // ID ментора
	Slots    []Slot // Слоты по датам, внутри даты в порядке правил
}

// Slot свободный интервал ментора
type Slot struct {
	Date            time.Time        // Дата
	StartTime       types.TimeString // Начало окна правила
	EndTime         types.TimeString // Конец окна правила
	DurationMinutes int              // Длительность окна правила
}
