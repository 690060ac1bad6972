package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/types"
)

// Request модели

// CreateRuleRequest новое еженедельное окно ментора
type CreateRuleRequest struct {
	Actor     domain.Actor
	DayOfWeek int    // 0 = понедельник ... 6 = воскресенье
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// ToDomainRule разбирает время и собирает активное правило
func (r *CreateRuleRequest) ToDomainRule() (*domain.AvailabilityRule, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}

	rule := &domain.AvailabilityRule{
		MentorID:  r.Actor.UserID,
		DayOfWeek: r.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
	}
	return rule, rule.Validate()
}

// SetRuleActiveRequest включение или выключение правила
type SetRuleActiveRequest struct {
	Actor    domain.Actor
	IsActive bool
}

// CreateBlockedDateRequest блокировка даты
type CreateBlockedDateRequest struct {
	Actor  domain.Actor
	Date   string // "YYYY-MM-DD"
	Reason *string
}

// Response модели

// RuleResponse правило доступности
type RuleResponse struct {
	ID              int64     `json:"id"`
	MentorID        int64     `json:"mentorId"`
	DayOfWeek       int       `json:"dayOfWeek"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RuleListResponse список правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	MentorID  int64     `json:"mentorId"`
	Date      string    `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// Методы конвертации

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		ID:              r.ID,
		MentorID:        r.MentorID,
		DayOfWeek:       r.DayOfWeek,
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		DurationMinutes: r.DurationMinutes(),
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	resp := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, r := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(r))
	}
	return resp
}

// FromDomainBlockedDate конвертирует блокировку в DTO
func FromDomainBlockedDate(d *domain.BlockedDate) *BlockedDateResponse {
	if d == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:        d.ID,
		MentorID:  d.MentorID,
		Date:      d.Date.Format(domain.DateFormat),
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список блокировок в DTO
func FromDomainBlockedDateList(dates []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{BlockedDates: make([]BlockedDateResponse, 0, len(dates))}
	for _, d := range dates {
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(d))
	}
	return resp
}
