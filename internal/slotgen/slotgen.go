package slotgen

import (
	"errors"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// ErrInvalidWindow is returned for a malformed or empty declaration window
var ErrInvalidWindow = errors.New("slotgen: invalid time window")

// Slot is one generated bookable interval [StartTime, EndTime)
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Generate partitions the window [start, end) into consecutive slots of
// durationMinutes each. A trailing remainder shorter than the duration is
// dropped, partial slots are never bookable. The function is pure: identical
// inputs always produce an identical, ordered sequence.
func Generate(start, end types.TimeString, durationMinutes int) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidWindow, durationMinutes)
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidWindow, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidWindow, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, start, end)
	}

	slots := make([]Slot, 0)
	current := start

	for current.IsBefore(end) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Next slot would cross midnight, nothing more fits.
			break
		}
		if slotEnd.IsAfter(end) {
			break
		}

		slots = append(slots, Slot{StartTime: current, EndTime: slotEnd})
		current = slotEnd
	}

	return slots, nil
}
