package cancel_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, cancelledBy domain.CancelledBy, reason string, cancelledAt time.Time) error
}

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Append(ctx context.Context, record *domain.AuditRecord) error
}

// AccessCodeResolver интерфейс сервиса разрешения кодов доступа
type AccessCodeResolver interface {
	Resolve(ctx context.Context, accessCode string) (*domain.AccessCodeContext, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
