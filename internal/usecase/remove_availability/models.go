package remove_availability

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// Request модель запроса на снятие доступности
// StartTime/EndTime опционально сужают удаляемое окно внутри даты;
// nil означает отсутствие границы с соответствующей стороны
type Request struct {
	TeacherID int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// SlotResponse модель удаленного слота
type SlotResponse struct {
	ID           int64
	TeacherID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotDuration int
}

// Response модель ответа со списком удаленных слотов
type Response struct {
	Removed []SlotResponse
}
