package get_teacher_appointments

import (
	"context"

	"github.com/m04kA/PTC-AppointmentService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetTeacherAppointments(ctx context.Context, req *models.GetTeacherAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
