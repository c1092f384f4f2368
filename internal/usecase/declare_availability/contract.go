package declare_availability

import (
	"context"
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	ListByWindow(ctx context.Context, teacherID int64, date time.Time, startTime, endTime *types.TimeString) ([]*domain.AvailabilitySlot, error)
}

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Append(ctx context.Context, record *domain.AuditRecord) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
