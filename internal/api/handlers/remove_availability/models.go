package remove_availability

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	removeAvailability "github.com/m04kA/PTC-AppointmentService/internal/usecase/remove_availability"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// RemoveAvailabilityRequest HTTP request model
// start_time/end_time опционально сужают удаляемое окно внутри даты
type RemoveAvailabilityRequest struct {
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// SlotResponse HTTP модель удаленного слота
type SlotResponse struct {
	ID           int64  `json:"id"`
	TeacherID    int64  `json:"teacher_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"`
}

// RemoveAvailabilityResponse HTTP response model
type RemoveAvailabilityResponse struct {
	Removed []SlotResponse `json:"removed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RemoveAvailabilityRequest) ToUseCaseRequest(teacherID int64) (*removeAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &removeAvailability.Request{
		TeacherID: teacherID,
		Date:      date,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *removeAvailability.Response) *RemoveAvailabilityResponse {
	removed := make([]SlotResponse, 0, len(resp.Removed))
	for _, slot := range resp.Removed {
		removed = append(removed, SlotResponse{
			ID:           slot.ID,
			TeacherID:    slot.TeacherID,
			Date:         slot.Date.Format(domain.DateFormat),
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			SlotDuration: slot.SlotDuration,
		})
	}
	return &RemoveAvailabilityResponse{Removed: removed}
}
