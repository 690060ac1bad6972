package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MentorshipService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только его ментор и менти
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(actor.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetMyBookings получает бронирования пользователя: как менти или как ментора, по его роли
// Опционально фильтрует по статусу
func (s *Service) GetMyBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%d, role=%s, status=%v", req.Actor.UserID, req.Actor.Role, req.Status)

	filter := domain.BookingsFilter{
		UserID: req.Actor.UserID,
		Role:   req.Actor.Role,
	}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil && *req.Status != "" {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMyBookings: invalid status=%s for user=%d", *req.Status, req.Actor.UserID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByParticipant(ctx, filter)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyBookings: fetched %d bookings for user=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования по правилам жизненного цикла.
// Вместе со статусом ментор может передать заметки и ссылку на встречу.
// Статус, метка времени и заметки пишутся одним обновлением; другие бронирования не затрагиваются.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> status=%s by user=%d", bookingID, req.Status, req.Actor.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}
	if err := validateUpdateStatus(req); err != nil {
		s.logger.Warn("UpdateStatus: invalid request for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		var reason *string
		if newStatus == domain.StatusCancelled {
			reason = req.CancellationReason
		}

		if err := booking.Transition(req.Actor, newStatus, reason, s.timeProvider.Now()); err != nil {
			s.logger.Warn("UpdateStatus: booking id=%d rejected %s -> %s by user=%d: %v",
				bookingID, booking.Status, newStatus, req.Actor.UserID, err)
			return translateDomainError(err)
		}
		if err := booking.SetMentorDetails(req.Actor, req.MentorNotes, req.MeetingLink); err != nil {
			s.logger.Warn("UpdateStatus: user=%d cannot set mentor details on booking id=%d", req.Actor.UserID, bookingID)
			return translateDomainError(err)
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			s.logger.Error("UpdateStatus: failed to save booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// SubmitSummary ментор фиксирует отчет о сессии, на который потом отвечает менти
func (s *Service) SubmitSummary(ctx context.Context, bookingID int64, req *models.SubmitSummaryRequest) (*models.BookingResponse, error) {
	s.logger.Info("SubmitSummary: booking id=%d by user=%d", bookingID, req.Actor.UserID)

	summary := strings.TrimSpace(req.Summary)
	if summary == "" || len(summary) > domain.MaxSessionSummaryLength {
		return nil, fmt.Errorf("%w: summary must be 1-%d characters", ErrInvalidInput, domain.MaxSessionSummaryLength)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "SubmitSummary", bookingID)
		if err != nil {
			return err
		}

		if err := booking.SubmitSummary(req.Actor, summary, s.timeProvider.Now()); err != nil {
			s.logger.Warn("SubmitSummary: rejected for booking id=%d by user=%d: %v", bookingID, req.Actor.UserID, err)
			return translateDomainError(err)
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			s.logger.Error("SubmitSummary: failed to save booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: SubmitSummary - repository error: %v", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SubmitSummary: summary stored for booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func validateUpdateStatus(req *models.UpdateStatusRequest) error {
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	if req.MentorNotes != nil && len(*req.MentorNotes) > domain.MaxMentorNotesLength {
		return fmt.Errorf("%w: mentor notes exceed %d characters", ErrInvalidInput, domain.MaxMentorNotesLength)
	}
	return nil
}
