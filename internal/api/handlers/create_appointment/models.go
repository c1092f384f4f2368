package create_appointment

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	bookSlot "github.com/m04kA/PTC-AppointmentService/internal/usecase/book_slot"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	AccessCode         string  `json:"access_code"`
	TeacherID          int64   `json:"teacher_id"`
	AvailabilitySlotID int64   `json:"availability_slot_id"`
	ParentName         string  `json:"parent_name"`
	ParentEmail        string  `json:"parent_email"`
	ParentPhone        string  `json:"parent_phone"`
	Notes              *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	AvailabilitySlotID int64   `json:"availability_slot_id"`
	TeacherID          int64   `json:"teacher_id"`
	StudentID          int64   `json:"student_id"`
	ParentName         string  `json:"parent_name"`
	ParentEmail        string  `json:"parent_email"`
	ParentPhone        string  `json:"parent_phone"`
	Date               string  `json:"date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	SlotDuration       int     `json:"slot_duration"`
	Notes              *string `json:"notes,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *bookSlot.Request {
	return &bookSlot.Request{
		AccessCode:         r.AccessCode,
		TeacherID:          r.TeacherID,
		AvailabilitySlotID: r.AvailabilitySlotID,
		ParentName:         r.ParentName,
		ParentEmail:        r.ParentEmail,
		ParentPhone:        r.ParentPhone,
		Notes:              r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		AvailabilitySlotID: resp.AvailabilitySlotID,
		TeacherID:          resp.TeacherID,
		StudentID:          resp.StudentID,
		ParentName:         resp.ParentName,
		ParentEmail:        resp.ParentEmail,
		ParentPhone:        resp.ParentPhone,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		SlotDuration:       resp.SlotDuration,
		Notes:              resp.Notes,
		Status:             resp.Status,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
