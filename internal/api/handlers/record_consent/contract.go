package record_consent

import (
	"context"

	recordConsent "github.com/m04kA/SMC-MentorshipService/internal/usecase/record_mentee_consent"
)

type RecordConsentUseCase interface {
	Execute(ctx context.Context, req *recordConsent.Request) (*recordConsent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
