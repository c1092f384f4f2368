package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/PTC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/PTC-AppointmentService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	lastFilter   domain.TeacherAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByTeacherWithFilter(_ context.Context, filter domain.TeacherAppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	var result []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.TeacherID != filter.TeacherID {
			continue
		}
		if !filter.IncludeCancelled && appt.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledAppointment(id, teacherID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:                 id,
		AvailabilitySlotID: 10,
		TeacherID:          teacherID,
		StudentID:          42,
		ParentName:         "J. Jansen",
		ParentEmail:        "jansen@example.org",
		Date:               time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:          "09:20",
		EndTime:            "09:40",
		SlotDuration:       20,
		Status:             domain.StatusScheduled,
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 5),
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("owner gets the appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Scheduled", resp.Status)
		assert.Nil(t, resp.CancelledBy)
	})

	t.Run("other teacher is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 7)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999, 5)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetTeacherAppointments_CancelledHiddenByDefault(t *testing.T) {
	cancelled := scheduledAppointment(2, 5)
	cancelled.Status = domain.StatusCancelled
	cancelled.CancelledBy = ptr.Ptr(domain.CancelledByParent)
	cancelled.CancellationReason = ptr.Ptr(domain.DefaultParentCancellationReason)
	cancelled.CancelledAt = ptr.Ptr(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))

	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 5),
		2: cancelled,
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetTeacherAppointments(context.Background(), &models.GetTeacherAppointmentsRequest{
		TeacherID: 5,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Scheduled", resp.Appointments[0].Status)

	resp, err = svc.GetTeacherAppointments(context.Background(), &models.GetTeacherAppointmentsRequest{
		TeacherID:        5,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}

func TestGetTeacherAppointments_InvalidInput(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, nopLogger{})

	t.Run("zero teacher", func(t *testing.T) {
		_, err := svc.GetTeacherAppointments(context.Background(), &models.GetTeacherAppointmentsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.GetTeacherAppointments(context.Background(), &models.GetTeacherAppointmentsRequest{
			TeacherID: 5,
			StartDate: &start,
			EndDate:   &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
