package models

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// GetTeacherAppointmentsRequest запрос списка записей учителя
type GetTeacherAppointmentsRequest struct {
	TeacherID        int64
	StartDate        *time.Time
	EndDate          *time.Time
	IncludeCancelled bool
}

// AppointmentResponse запись на встречу в терминах API
// Имена полей фиксированы контрактом с существующими потребителями
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
	CancelledBy        *string `json:"cancelled_by,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancellation_datetime,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain запись в API модель
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 appt.ID,
		AvailabilitySlotID: appt.AvailabilitySlotID,
		TeacherID:          appt.TeacherID,
		StudentID:          appt.StudentID,
		ParentName:         appt.ParentName,
		ParentEmail:        appt.ParentEmail,
		ParentPhone:        appt.ParentPhone,
		Date:               appt.Date.Format(domain.DateFormat),
		StartTime:          appt.StartTime.String(),
		EndTime:            appt.EndTime.String(),
		SlotDuration:       appt.SlotDuration,
		Notes:              appt.Notes,
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
		CreatedAt:          appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          appt.UpdatedAt.Format(time.RFC3339),
	}

	if appt.CancelledBy != nil {
		cancelledBy := string(*appt.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}
	if appt.CancelledAt != nil {
		cancelledAt := appt.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain записей в API модель
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		result = append(result, *FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{Appointments: result}
}
