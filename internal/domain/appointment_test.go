package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("Scheduled")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, status)

	status, err = ParseAppointmentStatus("Cancelled")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)

	_, err = ParseAppointmentStatus("scheduled")
	assert.Error(t, err, "status strings are case sensitive")

	_, err = ParseAppointmentStatus("Pending")
	assert.Error(t, err)
}

func TestParseCancelledBy(t *testing.T) {
	actor, err := ParseCancelledBy("Parent")
	require.NoError(t, err)
	assert.Equal(t, CancelledByParent, actor)

	actor, err = ParseCancelledBy("Teacher")
	require.NoError(t, err)
	assert.Equal(t, CancelledByTeacher, actor)

	_, err = ParseCancelledBy("Admin")
	assert.Error(t, err)
}

func TestHasCancellationMetadata(t *testing.T) {
	appt := Appointment{Status: StatusScheduled}
	assert.True(t, appt.IsScheduled())
	assert.False(t, appt.HasCancellationMetadata())

	actor := CancelledByParent
	reason := DefaultParentCancellationReason
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	appt.Status = StatusCancelled
	appt.CancelledBy = &actor
	appt.CancellationReason = &reason
	appt.CancelledAt = &at

	assert.True(t, appt.IsCancelled())
	assert.True(t, appt.HasCancellationMetadata())

	// Partially set metadata violates the all-or-nothing invariant.
	appt.CancelledAt = nil
	assert.False(t, appt.HasCancellationMetadata())
}

func TestSlotSameWindow(t *testing.T) {
	slot := AvailabilitySlot{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "09:20",
		EndTime:   "09:40",
	}

	assert.True(t, slot.SameWindow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), "09:20", "09:40"),
		"time-of-day on the date argument must not matter")
	assert.False(t, slot.SameWindow(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), "09:20", "09:40"))
	assert.False(t, slot.SameWindow(slot.Date, "09:20", "09:45"))
}
