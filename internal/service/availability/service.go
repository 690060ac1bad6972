package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	blockedDateRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/blockeddate"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
	"github.com/m04kA/SMC-MentorshipService/pkg/txmanager"
)

// Service сервис управления доступностью ментора: еженедельные окна и блокировки дат
type Service struct {
	ruleRepo        RuleRepository
	blockedDateRepo BlockedDateRepository
	bookingRepo     BookingRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	ruleRepo RuleRepository,
	blockedDateRepo BlockedDateRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:        ruleRepo,
		blockedDateRepo: blockedDateRepo,
		bookingRepo:     bookingRepo,
		txManager:       txManager,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// CreateRule создает еженедельное окно.
// Активные окна одного дня недели не пересекаются.
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: mentor=%d, day=%d, %s-%s", req.Actor.UserID, req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Только ментор
	if !req.Actor.IsMentor() {
		s.logger.Warn("CreateRule: user=%d with role=%s is not a mentor", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидация времени и дня недели
	rule, err := req.ToDomainRule()
	if err != nil {
		s.logger.Warn("CreateRule: invalid rule for mentor=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверка пересечений и вставка одной serializable транзакцией
	var created *domain.AvailabilityRule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.checkNoOverlap(txCtx, "CreateRule", rule); err != nil {
			return err
		}

		created, err = s.ruleRepo.Create(txCtx, rule)
		if err != nil {
			s.logger.Error("CreateRule: repository error for mentor=%d: %v", req.Actor.UserID, err)
			return fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapSerialization(err)
	}

	s.logger.Info("CreateRule: created rule id=%d for mentor=%d", created.ID, created.MentorID)
	return models.FromDomainRule(created), nil
}

// GetMyRules правила ментора (включая выключенные)
func (s *Service) GetMyRules(ctx context.Context, actor domain.Actor) (*models.RuleListResponse, error) {
	if !actor.IsMentor() {
		return nil, ErrAccessDenied
	}

	rules, err := s.ruleRepo.GetByMentor(ctx, actor.UserID, domain.AvailabilityFilter{})
	if err != nil {
		s.logger.Error("GetMyRules: repository error for mentor=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMyRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyRules: fetched %d rules for mentor=%d", len(rules), actor.UserID)
	return models.FromDomainRuleList(rules), nil
}

// SetRuleActive включает или выключает правило. При включении пересечения проверяются заново.
func (s *Service) SetRuleActive(ctx context.Context, ruleID int64, req *models.SetRuleActiveRequest) (*models.RuleResponse, error) {
	s.logger.Info("SetRuleActive: rule id=%d -> active=%t by user=%d", ruleID, req.IsActive, req.Actor.UserID)

	var updated *domain.AvailabilityRule
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rule, err := s.getOwnedRule(txCtx, "SetRuleActive", ruleID, req.Actor)
		if err != nil {
			return err
		}

		if rule.IsActive == req.IsActive {
			updated = rule
			return nil
		}

		if req.IsActive {
			if err := s.checkNoOverlap(txCtx, "SetRuleActive", rule); err != nil {
				return err
			}
		}

		if err := s.ruleRepo.SetActive(txCtx, ruleID, req.IsActive); err != nil {
			s.logger.Error("SetRuleActive: repository error for rule id=%d: %v", ruleID, err)
			return fmt.Errorf("%w: SetRuleActive - repository error: %v", ErrInternal, err)
		}

		rule.IsActive = req.IsActive
		updated = rule
		return nil
	})
	if err != nil {
		return nil, s.mapSerialization(err)
	}

	return models.FromDomainRule(updated), nil
}

// DeleteRule удаляет правило, если на него не приходится ни одно будущее активное бронирование
func (s *Service) DeleteRule(ctx context.Context, ruleID int64, actor domain.Actor) error {
	s.logger.Info("DeleteRule: rule id=%d by user=%d", ruleID, actor.UserID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		rule, err := s.getOwnedRule(txCtx, "DeleteRule", ruleID, actor)
		if err != nil {
			return err
		}

		today := domain.TruncateToDate(s.timeProvider.Now())
		bookings, err := s.bookingRepo.GetActiveByMentorFrom(txCtx, rule.MentorID, today)
		if err != nil {
			s.logger.Error("DeleteRule: failed to get bookings for mentor=%d: %v", rule.MentorID, err)
			return fmt.Errorf("%w: DeleteRule - failed to get bookings: %v", ErrInternal, err)
		}

		for _, b := range bookings {
			if rule.OverlapsBooking(b) {
				s.logger.Warn("DeleteRule: rule id=%d is used by booking id=%d on %s",
					ruleID, b.ID, b.SessionDate.Format(domain.DateFormat))
				return ErrRuleInUse
			}
		}

		if err := s.ruleRepo.Delete(txCtx, ruleID); err != nil {
			if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
				return ErrRuleNotFound
			}
			s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
			return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteRule: deleted rule id=%d", ruleID)
		return nil
	})
}

// CreateBlockedDate блокирует дату. Одна блокировка на дату.
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: mentor=%d, date=%s", req.Actor.UserID, req.Date)

	if !req.Actor.IsMentor() {
		s.logger.Warn("CreateBlockedDate: user=%d with role=%s is not a mentor", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockedReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBlockedReasonLength)
	}

	created, err := s.blockedDateRepo.Create(ctx, &domain.BlockedDate{
		MentorID: req.Actor.UserID,
		Date:     date,
		Reason:   req.Reason,
	})
	if err != nil {
		if errors.Is(err, blockedDateRepo.ErrAlreadyBlocked) {
			s.logger.Warn("CreateBlockedDate: mentor=%d already blocked %s", req.Actor.UserID, req.Date)
			return nil, ErrAlreadyBlocked
		}
		s.logger.Error("CreateBlockedDate: repository error for mentor=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: created blocked date id=%d", created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// GetMyBlockedDates все блокировки ментора
func (s *Service) GetMyBlockedDates(ctx context.Context, actor domain.Actor) (*models.BlockedDateListResponse, error) {
	if !actor.IsMentor() {
		return nil, ErrAccessDenied
	}

	dates, err := s.blockedDateRepo.GetByMentorInRange(ctx, actor.UserID, nil, nil)
	if err != nil {
		s.logger.Error("GetMyBlockedDates: repository error for mentor=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMyBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(dates), nil
}

// DeleteBlockedDate снимает блокировку. Только владелец.
func (s *Service) DeleteBlockedDate(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("DeleteBlockedDate: id=%d by user=%d", id, actor.UserID)

	blocked, err := s.blockedDateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	if !actor.IsMentor() || blocked.MentorID != actor.UserID {
		s.logger.Warn("DeleteBlockedDate: user=%d does not own blocked date id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if err := s.blockedDateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Вспомогательные методы

func (s *Service) getOwnedRule(ctx context.Context, op string, ruleID int64, actor domain.Actor) (*domain.AvailabilityRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("%s: rule id=%d not found", op, ruleID)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("%s: repository error for rule id=%d: %v", op, ruleID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.IsMentor() || rule.MentorID != actor.UserID {
		s.logger.Warn("%s: user=%d does not own rule id=%d", op, actor.UserID, ruleID)
		return nil, ErrAccessDenied
	}
	return rule, nil
}

// checkNoOverlap активные правила того же дня недели не должны пересекаться с rule
func (s *Service) checkNoOverlap(ctx context.Context, op string, rule *domain.AvailabilityRule) error {
	day := rule.DayOfWeek
	existing, err := s.ruleRepo.GetByMentor(ctx, rule.MentorID, domain.AvailabilityFilter{DayOfWeek: &day, ActiveOnly: true})
	if err != nil {
		s.logger.Error("%s: failed to get rules for mentor=%d: %v", op, rule.MentorID, err)
		return fmt.Errorf("%w: %s - failed to get rules: %v", ErrInternal, op, err)
	}

	for _, other := range existing {
		if other.ID == rule.ID {
			continue
		}
		if rule.Overlaps(other) {
			s.logger.Warn("%s: %s-%s overlaps rule id=%d (%s-%s) for mentor=%d",
				op, rule.StartTime, rule.EndTime, other.ID, other.StartTime, other.EndTime, rule.MentorID)
			return fmt.Errorf("%w: overlaps %s-%s", ErrRuleOverlap, other.StartTime, other.EndTime)
		}
	}
	return nil
}

// mapSerialization конкурентное изменение тех же правил - конфликт, клиент перечитывает состояние
func (s *Service) mapSerialization(err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		s.logger.Warn("availability: concurrent rule change: %v", err)
		return fmt.Errorf("%w: concurrent change, retry", ErrRuleOverlap)
	}
	return err
}
