package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// BookingStatus статус жизненного цикла сессии
type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingPaymentStatus статус оплаты бронирования
type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
)

// ConsentStatus согласие менти с отчетом ментора
type ConsentStatus string

const (
	ConsentUnset    ConsentStatus = "unset"
	ConsentApproved ConsentStatus = "approved"
	ConsentDeclined ConsentStatus = "declined"
)

// allowedTransitions допустимые переходы статусов.
// completed и cancelled терминальные.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// Booking сессия менторства - корень агрегата
type Booking struct {
	ID              int64
	MenteeID        int64
	MentorID        int64
	SessionDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Amount          types.Money
	Status          BookingStatus
	PaymentStatus   BookingPaymentStatus
	PaymentIntentID *string
	Message         *string
	MeetingLink     *string
	MentorNotes     *string

	// Закрытие сессии
	SessionSummary     *string
	SummarySubmittedAt *time.Time
	MenteeConsent      ConsentStatus
	MenteeConsentAt    *time.Time
	MenteeConsentNote  *string

	CancellationReason *string
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive бронирование занимает время ментора
func (b *Booking) IsActive() bool {
	return b.Status == StatusRequested || b.Status == StatusConfirmed
}

// IsTerminal из статуса нет переходов
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsParticipant пользователь - ментор или менти этой сессии
func (b *Booking) IsParticipant(userID int64) bool {
	return b.MenteeID == userID || b.MentorID == userID
}

// IsMentor актор - ментор этой сессии
func (b *Booking) IsMentor(actor Actor) bool {
	return actor.IsMentor() && actor.UserID == b.MentorID
}

// IsMentee актор - менти этой сессии
func (b *Booking) IsMentee(actor Actor) bool {
	return actor.IsMentee() && actor.UserID == b.MenteeID
}

// Overlaps пересекается ли бронирование с интервалом в ту же дату
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// CanTransitionTo допустим ли переход в статус (без учета ролей)
func (b *Booking) CanTransitionTo(to BookingStatus) bool {
	for _, s := range allowedTransitions[b.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition переводит бронирование в новый статус.
// Подтвердить и завершить может только ментор, отменить - любой участник.
// При ошибке бронирование не меняется.
func (b *Booking) Transition(actor Actor, to BookingStatus, reason *string, now time.Time) error {
	if !b.IsParticipant(actor.UserID) {
		return fmt.Errorf("%w: user %d is not a participant of booking %d", ErrForbidden, actor.UserID, b.ID)
	}

	switch to {
	case StatusConfirmed, StatusCompleted:
		if !b.IsMentor(actor) {
			return fmt.Errorf("%w: only the mentor can move booking to %s", ErrForbidden, to)
		}
	case StatusCancelled:
		if !b.IsMentor(actor) && !b.IsMentee(actor) {
			return fmt.Errorf("%w: only booking participants can cancel", ErrForbidden)
		}
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidTransition, to)
	}

	if !b.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}

	ts := now
	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &ts
	case StatusCompleted:
		b.CompletedAt = &ts
	case StatusCancelled:
		b.CancelledAt = &ts
		b.CancellationReason = reason
	}
	b.Status = to
	return nil
}

// SetMentorDetails заметки и ссылка на встречу, которые ментор передает вместе со сменой статуса
func (b *Booking) SetMentorDetails(actor Actor, notes, meetingLink *string) error {
	if notes == nil && meetingLink == nil {
		return nil
	}
	if !b.IsMentor(actor) {
		return fmt.Errorf("%w: only the mentor can set notes or meeting link", ErrForbidden)
	}
	if notes != nil {
		b.MentorNotes = notes
	}
	if meetingLink != nil {
		b.MeetingLink = meetingLink
	}
	return nil
}

// SubmitSummary ментор фиксирует отчет о проведенной сессии
func (b *Booking) SubmitSummary(actor Actor, summary string, now time.Time) error {
	if !b.IsMentor(actor) {
		return fmt.Errorf("%w: only the mentor can submit a session summary", ErrForbidden)
	}
	if b.Status != StatusConfirmed && b.Status != StatusCompleted {
		return fmt.Errorf("%w: summary requires confirmed or completed booking, got %s", ErrInvalidTransition, b.Status)
	}
	if b.MenteeConsent != ConsentUnset && b.MenteeConsent != "" {
		return fmt.Errorf("%w: mentee already responded to the summary", ErrConflict)
	}

	ts := now
	b.SessionSummary = &summary
	b.SummarySubmittedAt = &ts
	return nil
}

// RecordConsent менти одобряет или отклоняет отчет. Ответ дается один раз.
func (b *Booking) RecordConsent(actor Actor, approved bool, note *string, now time.Time) error {
	if !b.IsMentee(actor) {
		return fmt.Errorf("%w: only the mentee can respond to the session summary", ErrForbidden)
	}
	if b.SessionSummary == nil || b.SummarySubmittedAt == nil {
		return ErrSummaryRequired
	}
	if b.MenteeConsent != ConsentUnset && b.MenteeConsent != "" {
		return fmt.Errorf("%w: consent already recorded as %s", ErrConflict, b.MenteeConsent)
	}

	ts := now
	b.MenteeConsent = ConsentDeclined
	if approved {
		b.MenteeConsent = ConsentApproved
	}
	b.MenteeConsentAt = &ts
	b.MenteeConsentNote = note
	return nil
}

// HasConsent менти одобрил отчет
func (b *Booking) HasConsent() bool {
	return b.MenteeConsent == ConsentApproved
}

// AttachPaymentIntent привязывает намерение оплаты провайдера
func (b *Booking) AttachPaymentIntent(intentID string) {
	b.PaymentIntentID = &intentID
}

// MarkPaid отмечает бронирование оплаченным.
// autoConfirm переводит запрошенную сессию в confirmed (настройка деплоя).
func (b *Booking) MarkPaid(intentID string, autoConfirm bool, now time.Time) {
	b.PaymentStatus = BookingPaymentPaid
	if b.PaymentIntentID == nil {
		b.PaymentIntentID = &intentID
	}
	if autoConfirm && b.Status == StatusRequested {
		ts := now
		b.Status = StatusConfirmed
		b.ConfirmedAt = &ts
	}
}

// IsPaid оплата проведена
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == BookingPaymentPaid
}

// BookingsFilter фильтр списка бронирований участника
type BookingsFilter struct {
	UserID int64          // Обязательный параметр
	Role   Role           // Роль определяет колонку: mentee_id или mentor_id
	Status *BookingStatus // Фильтр по статусу (опционально)
}
