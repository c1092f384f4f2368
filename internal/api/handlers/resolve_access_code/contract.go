package resolve_access_code

import (
	"context"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

type AccessCodeService interface {
	Resolve(ctx context.Context, accessCode string) (*domain.AccessCodeContext, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
