package cancel_appointment

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/PTC-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
// cancelled_by определяет актора: Parent подтверждает право кодом доступа,
// Teacher - заголовком авторизации
type CancelAppointmentRequest struct {
	CancelledBy        string  `json:"cancelled_by"`
	AccessCode         string  `json:"access_code,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

// CancelledAppointmentResponse HTTP response model
type CancelledAppointmentResponse struct {
	ID                 int64  `json:"id"`
	AvailabilitySlotID int64  `json:"availability_slot_id"`
	TeacherID          int64  `json:"teacher_id"`
	StudentID          int64  `json:"student_id"`
	Date               string `json:"date"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	Status             string `json:"status"`
	CancelledBy        string `json:"cancelled_by"`
	CancellationReason string `json:"cancellation_reason"`
	CancelledAt        string `json:"cancellation_datetime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelledAppointmentResponse {
	return &CancelledAppointmentResponse{
		ID:                 resp.ID,
		AvailabilitySlotID: resp.AvailabilitySlotID,
		TeacherID:          resp.TeacherID,
		StudentID:          resp.StudentID,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		EndTime:            resp.EndTime.String(),
		Status:             resp.Status,
		CancelledBy:        resp.CancelledBy,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        resp.CancelledAt.Format(time.RFC3339),
	}
}
