package feedback

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("feedback.service: booking not found: %w", domain.ErrNotFound)

	// ErrNotMentee оценку оставляет только менти сессии
	ErrNotMentee = fmt.Errorf("feedback.service: only the session mentee can leave feedback: %w", domain.ErrForbidden)

	// ErrSessionNotCompleted оценить можно только завершенную сессию
	ErrSessionNotCompleted = fmt.Errorf("feedback.service: session is not completed: %w", domain.ErrInvalidTransition)

	// ErrFeedbackExists одна оценка на сессию
	ErrFeedbackExists = fmt.Errorf("feedback.service: feedback already submitted: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("feedback.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("feedback.service: internal error")
)
