package domain

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// AvailabilitySlot represents a fixed-length, teacher-declared, individually
// bookable time interval. A slot may be removed only while no scheduled
// appointment references it.
type AvailabilitySlot struct {
	ID           int64
	TeacherID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotDuration int
	Visible      bool
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SameWindow returns true if the slot occupies the given (date, start, end) window
func (s *AvailabilitySlot) SameWindow(date time.Time, start, end types.TimeString) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && s.StartTime == start && s.EndTime == end
}

// SlotFilter describes the filter for slot listings
type SlotFilter struct {
	TeacherID     int64      // Required
	StartDate     *time.Time // Optional period start
	EndDate       *time.Time // Optional period end
	OnlyVisible   bool       // Restrict to parent-visible slots
	ExcludeBooked bool       // Drop slots that have a scheduled appointment
}
