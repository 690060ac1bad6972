package record_mentee_consent

import (
	"fmt"
	"unicode/utf8"

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

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxConsentNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxConsentNoteLength)
	}

	return nil
}
