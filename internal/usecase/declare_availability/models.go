package declare_availability

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// Request модель запроса на объявление окна доступности
// Окно [StartTime, EndTime) нарезается на слоты по SlotDuration минут,
// неполный остаток в конце окна отбрасывается
type Request struct {
	TeacherID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotDuration int     // Длительность слота в минутах, [10, 30]
	Notes        *string // Заметки, копируются в каждый созданный слот (опционально)
}

// SlotResponse модель созданного слота
type SlotResponse struct {
	ID           int64
	TeacherID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotDuration int
	Visible      bool
	Notes        *string
	CreatedAt    time.Time
}

// Response модель ответа: только вновь созданные слоты
// Слоты, уже существовавшие с тем же окном, в ответ не попадают
type Response struct {
	Created []SlotResponse
}
