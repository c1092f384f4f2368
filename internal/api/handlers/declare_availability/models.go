package declare_availability

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	declareAvailability "github.com/m04kA/PTC-AppointmentService/internal/usecase/declare_availability"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// DeclareAvailabilityRequest HTTP request model
type DeclareAvailabilityRequest struct {
	Date         string  `json:"date"`       // "2025-06-15"
	StartTime    string  `json:"start_time"` // "09:00"
	EndTime      string  `json:"end_time"`   // "11:00"
	SlotDuration int     `json:"slot_duration"`
	Notes        *string `json:"notes,omitempty"`
}

// SlotResponse HTTP модель созданного слота
type SlotResponse struct {
	ID           int64   `json:"id"`
	TeacherID    int64   `json:"teacher_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	SlotDuration int     `json:"slot_duration"`
	Visible      bool    `json:"visible"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// DeclareAvailabilityResponse HTTP response model
type DeclareAvailabilityResponse struct {
	Created []SlotResponse `json:"created"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DeclareAvailabilityRequest) ToUseCaseRequest(teacherID int64) (*declareAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &declareAvailability.Request{
		TeacherID:    teacherID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		SlotDuration: r.SlotDuration,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *declareAvailability.Response) *DeclareAvailabilityResponse {
	created := make([]SlotResponse, 0, len(resp.Created))
	for _, slot := range resp.Created {
		created = append(created, SlotResponse{
			ID:           slot.ID,
			TeacherID:    slot.TeacherID,
			Date:         slot.Date.Format(domain.DateFormat),
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			SlotDuration: slot.SlotDuration,
			Visible:      slot.Visible,
			Notes:        slot.Notes,
			CreatedAt:    slot.CreatedAt.Format(time.RFC3339),
		})
	}
	return &DeclareAvailabilityResponse{Created: created}
}
