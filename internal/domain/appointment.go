package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// ParseAppointmentStatus validates a wire-level status string
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// CancelledBy identifies which party cancelled an appointment
type CancelledBy string

const (
	CancelledByParent  CancelledBy = "Parent"
	CancelledByTeacher CancelledBy = "Teacher"
)

// ParseCancelledBy validates a wire-level cancelled_by string
func ParseCancelledBy(s string) (CancelledBy, error) {
	switch CancelledBy(s) {
	case CancelledByParent:
		return CancelledByParent, nil
	case CancelledByTeacher:
		return CancelledByTeacher, nil
	default:
		return "", fmt.Errorf("unknown cancelling party %q", s)
	}
}

// Appointment represents a booked conference between a parent and a teacher.
// Date and times are copied from the availability slot at booking time, so a
// later slot edit cannot silently alter a confirmed appointment. Parent
// contact data is a snapshot, there is no parent account to reference.
// Appointments are never physically deleted.
type Appointment struct {
	ID                 int64
	AvailabilitySlotID int64
	TeacherID          int64
	StudentID          int64

	ParentName  string
	ParentEmail string
	ParentPhone string

	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotDuration int

	Notes *string

	Status AppointmentStatus

	// Cancellation metadata. The three fields are all-or-nothing: set
	// together on cancellation, nil while the appointment is scheduled.
	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// HasCancellationMetadata returns true if all three cancellation fields are set
func (a *Appointment) HasCancellationMetadata() bool {
	return a.CancelledBy != nil && a.CancellationReason != nil && a.CancelledAt != nil
}

// TeacherAppointmentsFilter describes the filter for a teacher's appointment listing
type TeacherAppointmentsFilter struct {
	TeacherID        int64      // Required
	StartDate        *time.Time // Optional period start
	EndDate          *time.Time // Optional period end
	IncludeCancelled bool       // Whether cancelled appointments are included
}
