package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/PTC-AppointmentService/internal/service/appointments/models"
)

// Service read-сервис записей на встречи
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Учитель видит только собственные записи
func (s *Service) GetByID(ctx context.Context, id int64, teacherID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for teacher=%d", id, teacherID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.TeacherID != teacherID {
		s.logger.Warn("GetByID: access denied for teacher=%d to appointment id=%d", teacherID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetTeacherAppointments получает записи учителя за период
// Отмененные записи включаются только по явному запросу - они сохраняются
// для истории и никогда физически не удаляются
func (s *Service) GetTeacherAppointments(ctx context.Context, req *models.GetTeacherAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.TeacherID <= 0 {
		return nil, fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter := domain.TeacherAppointmentsFilter{
		TeacherID:        req.TeacherID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IncludeCancelled: req.IncludeCancelled,
	}

	appts, err := s.appointmentRepo.GetByTeacherWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTeacherAppointments: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: GetTeacherAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeacherAppointments: fetched %d appointments for teacher=%d",
		len(appts), req.TeacherID)

	return models.FromDomainAppointmentList(appts), nil
}
