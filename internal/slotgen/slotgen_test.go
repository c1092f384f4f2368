package slotgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

func TestGenerate_DropsTrailingRemainder(t *testing.T) {
	slots, err := Generate("09:00", "09:47", 15)
	require.NoError(t, err)

	// The trailing 2 minutes are dropped, not rounded or padded.
	require.Len(t, slots, 3)
	assert.Equal(t, Slot{StartTime: "09:00", EndTime: "09:15"}, slots[0])
	assert.Equal(t, Slot{StartTime: "09:15", EndTime: "09:30"}, slots[1])
	assert.Equal(t, Slot{StartTime: "09:30", EndTime: "09:45"}, slots[2])
}

func TestGenerate_ExactPartition(t *testing.T) {
	slots, err := Generate("09:00", "10:00", 20)
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:40"), slots[2].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[2].EndTime)
}

func TestGenerate_WindowShorterThanDuration(t *testing.T) {
	slots, err := Generate("09:00", "09:10", 15)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate("08:30", "12:45", 25)
	require.NoError(t, err)

	second, err := Generate("08:30", "12:45", 25)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_InvalidWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		end      types.TimeString
		duration int
	}{
		{"zero duration", "09:00", "10:00", 0},
		{"negative duration", "09:00", "10:00", -15},
		{"start equals end", "09:00", "09:00", 15},
		{"start after end", "10:00", "09:00", 15},
		{"malformed start", "9am", "10:00", 15},
		{"malformed end", "09:00", "25:00", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.start, tt.end, tt.duration)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestGenerate_NeverExtendsPastEnd(t *testing.T) {
	slots, err := Generate("15:05", "17:38", 30)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.False(t, slot.EndTime.IsAfter("17:38"), "slot %s-%s extends past window end", slot.StartTime, slot.EndTime)
	}
	require.Len(t, slots, 5)
}
