package book_slot

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	AccessCode         string  // Родительский код доступа
	TeacherID          int64   // ID учителя, к которому записывается родитель
	AvailabilitySlotID int64   // ID выбранного слота
	ParentName         string  // Контактные данные родителя (снимок на момент записи)
	ParentEmail        string
	ParentPhone        string
	Notes              *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID                 int64
	AvailabilitySlotID int64
	TeacherID          int64
	StudentID          int64
	ParentName         string
	ParentEmail        string
	ParentPhone        string
	Date               time.Time
	StartTime          types.TimeString
	EndTime            types.TimeString
	SlotDuration       int
	Notes              *string
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
