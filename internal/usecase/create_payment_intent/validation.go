package create_payment_intent

import (
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateBookingPayable оплатить можно только подтвержденную и еще не оплаченную сессию своего бронирования
func validateBookingPayable(booking *domain.Booking, actor domain.Actor) error {
	if !booking.IsMentee(actor) {
		return ErrNotMentee
	}

	if booking.IsPaid() {
		return ErrAlreadyPaid
	}

	if booking.Status != domain.StatusConfirmed {
		return fmt.Errorf("%w: current status %s", ErrBookingNotConfirmed, booking.Status)
	}

	return nil
}
