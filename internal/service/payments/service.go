package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	balanceRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/balance"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-MentorshipService/internal/service/payments/models"
)

// Service чтение балансов и истории платежей
type Service struct {
	balanceRepo BalanceRepository
	paymentRepo PaymentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(balanceRepo BalanceRepository, paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		balanceRepo: balanceRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// GetBalance баланс ментора. До первого проведенного платежа баланс нулевой.
func (s *Service) GetBalance(ctx context.Context, actor domain.Actor) (*models.BalanceResponse, error) {
	if !actor.IsMentor() {
		s.logger.Warn("GetBalance: user=%d with role=%s has no balance", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	balance, err := s.balanceRepo.GetByMentor(ctx, actor.UserID)
	if err != nil {
		if !errors.Is(err, balanceRepo.ErrBalanceNotFound) {
			s.logger.Error("GetBalance: repository error for mentor=%d: %v", actor.UserID, err)
			return nil, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
		}
		balance = domain.EmptyBalance(actor.UserID)
	}

	return models.FromDomainBalance(balance), nil
}

// GetHistory платежи пользователя: как плательщика (менти) или получателя (ментор)
func (s *Service) GetHistory(ctx context.Context, actor domain.Actor) (*models.PaymentListResponse, error) {
	payments, err := s.paymentRepo.GetByParticipant(ctx, actor.UserID, actor.Role)
	if err != nil {
		s.logger.Error("GetHistory: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHistory: fetched %d payments for user=%d, role=%s", len(payments), actor.UserID, actor.Role)
	return models.FromDomainPaymentList(payments), nil
}

// GetByID платеж по ID, доступен только участникам
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if payment.MenteeID != actor.UserID && payment.MentorID != actor.UserID {
		s.logger.Warn("GetByID: user=%d is not a participant of payment id=%d", actor.UserID, id)
		return nil, ErrNotParticipant
	}

	resp := models.FromDomainPayment(payment)
	return &resp, nil
}
