package release_payout

import (
	"context"

	releasePayout "github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
)

type ReleasePayoutUseCase interface {
	Execute(ctx context.Context, req *releasePayout.Request) (*releasePayout.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
