package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListScheduledBySlotIDs(ctx context.Context, slotIDs []int64) ([]int64, error)
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
