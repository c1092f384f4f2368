package cancel_appointment

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// Request модель запроса на отмену записи
// Actor определяет, кто отменяет: родитель подтверждает право кодом доступа,
// учитель - своим идентификатором из контекста авторизации
type Request struct {
	AppointmentID int64
	Actor         domain.CancelledBy
	AccessCode    string  // Обязателен для Actor=Parent
	TeacherID     int64   // Обязателен для Actor=Teacher
	Reason        *string // Причина отмены (опционально)
}

// Response модель ответа с отмененной записью
type Response struct {
	ID                 int64
	AvailabilitySlotID int64
	TeacherID          int64
	StudentID          int64
	Date               time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	Status             string
	CancelledBy        string
	CancellationReason string
	CancelledAt        time.Time
}
