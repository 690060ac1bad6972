package domain

// Ограничения длительности сессии
const (
	MinSessionDurationMinutes = 30
	MaxSessionDurationMinutes = 240 // 4 часа
)

// Business validation constants
const (
	MaxMessageLength            = 1000
	MaxCancellationReasonLength = 500
	MaxMentorNotesLength        = 2000
	MaxSessionSummaryLength     = 5000
	MaxConsentNoteLength        = 1000
	MaxBlockedReasonLength      = 255
	MaxFeedbackCommentLength    = 2000
	MaxSlotsRangeDays           = 90
	MinRating                   = 1
	MaxRating                   = 5
)

// Деньги
const (
	DefaultCurrency              = "gbp"
	DefaultCommissionBasisPoints = 2000 // 20%
	BasisPointsPerWhole          = 10000
	MinutesPerHour               = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, которые занимают время ментора
// Используется при проверке пересечений и генерации слотов
var ActiveStatuses = []BookingStatus{
	StatusRequested,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
