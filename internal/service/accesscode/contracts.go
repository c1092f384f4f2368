package accesscode

import (
	"context"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// StudentRepository интерфейс read-репозитория студентов
type StudentRepository interface {
	GetByAccessCode(ctx context.Context, accessCode string) (*domain.Student, error)
	ListEligibleTeachers(ctx context.Context, classID int64, schoolYear string) ([]*domain.EligibleTeacher, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
