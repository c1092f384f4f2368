package remove_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/ptr"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

type memStore struct {
	slots        map[int64]domain.AvailabilitySlot
	appointments map[int64]domain.Appointment
	audit        []domain.AuditRecord
}

func newMemStore() *memStore {
	return &memStore{
		slots:        make(map[int64]domain.AvailabilitySlot),
		appointments: make(map[int64]domain.Appointment),
	}
}

func (s *memStore) ListByWindow(_ context.Context, teacherID int64, date time.Time, startTime, endTime *types.TimeString) ([]*domain.AvailabilitySlot, error) {
	var result []*domain.AvailabilitySlot
	for id := range s.slots {
		slot := s.slots[id]
		if slot.TeacherID != teacherID {
			continue
		}
		y1, m1, d1 := slot.Date.Date()
		y2, m2, d2 := date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		if startTime != nil && slot.StartTime.IsBefore(*startTime) {
			continue
		}
		if endTime != nil && slot.EndTime.IsAfter(*endTime) {
			continue
		}
		result = append(result, &slot)
	}
	return result, nil
}

func (s *memStore) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := s.slots[id]; ok {
			delete(s.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStore) ListScheduledBySlotIDs(_ context.Context, slotIDs []int64) ([]int64, error) {
	ids := make([]int64, 0)
	for _, appt := range s.appointments {
		if appt.Status != domain.StatusScheduled {
			continue
		}
		for _, slotID := range slotIDs {
			if appt.AvailabilitySlotID == slotID {
				ids = append(ids, appt.ID)
			}
		}
	}
	return ids, nil
}

func (s *memStore) Append(_ context.Context, record *domain.AuditRecord) error {
	s.audit = append(s.audit, *record)
	return nil
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	slots := make(map[int64]domain.AvailabilitySlot, len(m.store.slots))
	for id, slot := range m.store.slots {
		slots[id] = slot
	}
	audit := append([]domain.AuditRecord(nil), m.store.audit...)
	if err := fn(ctx); err != nil {
		m.store.slots = slots
		m.store.audit = audit
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(store *memStore) *UseCase {
	return NewUseCase(store, store, store, &memTxManager{store: store}, nopLogger{})
}

func seedSlot(store *memStore, id int64, start, end types.TimeString) {
	store.slots[id] = domain.AvailabilitySlot{
		ID:           id,
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    start,
		EndTime:      end,
		SlotDuration: 20,
		Visible:      true,
	}
}

func seedScheduledAppointment(store *memStore, id, slotID int64) {
	store.appointments[id] = domain.Appointment{
		ID:                 id,
		AvailabilitySlotID: slotID,
		TeacherID:          1,
		StudentID:          42,
		Status:             domain.StatusScheduled,
	}
}

func TestExecute_RemovesFreeSlots(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 1, "09:00", "09:20")
	seedSlot(store, 2, "09:20", "09:40")
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Len(t, resp.Removed, 2)
	assert.Empty(t, store.slots)

	require.Len(t, store.audit, 1)
	assert.Equal(t, domain.ActionDeleteAvailability, store.audit[0].Action)
}

func TestExecute_BookedSlotBlocksWholeRemoval(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 1, "09:00", "09:20")
	seedSlot(store, 2, "09:20", "09:40")
	seedScheduledAppointment(store, 100, 2)
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: testDate()})
	require.ErrorIs(t, err, ErrSlotInUse)
	assert.Contains(t, err.Error(), "1 active appointment")

	// Свободный слот тоже остался: операция атомарна.
	assert.Len(t, store.slots, 2)
	assert.Empty(t, store.audit)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 1, "09:00", "09:20")
	seedScheduledAppointment(store, 100, 1)

	appt := store.appointments[100]
	appt.Status = domain.StatusCancelled
	appt.CancelledBy = ptr.Ptr(domain.CancelledByParent)
	store.appointments[100] = appt

	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: testDate()})
	require.NoError(t, err)
	assert.Len(t, resp.Removed, 1)
	assert.Empty(t, store.slots)
}

func TestExecute_TimeBoundsNarrowTheWindow(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 1, "09:00", "09:20")
	seedSlot(store, 2, "09:20", "09:40")
	seedSlot(store, 3, "10:00", "10:20")
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID: 1,
		Date:      testDate(),
		StartTime: ptr.Ptr(types.TimeString("09:00")),
		EndTime:   ptr.Ptr(types.TimeString("09:40")),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Removed, 2)
	require.Len(t, store.slots, 1)
	_, ok := store.slots[3]
	assert.True(t, ok)
}

func TestExecute_NoMatchingSlots(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Empty(t, resp.Removed)
	assert.Empty(t, store.audit)
}

func TestExecute_OtherTeacherSlotsUntouched(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 1, "09:00", "09:20")
	other := store.slots[1]
	other.ID = 2
	other.TeacherID = 7
	store.slots[2] = other
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Len(t, resp.Removed, 1)
	_, ok := store.slots[2]
	assert.True(t, ok)
}

func TestExecute_InvalidInput(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	tests := map[string]*Request{
		"zero teacher": {Date: testDate()},
		"zero date":    {TeacherID: 1},
		"start after end": {
			TeacherID: 1, Date: testDate(),
			StartTime: ptr.Ptr(types.TimeString("11:00")),
			EndTime:   ptr.Ptr(types.TimeString("10:00")),
		},
		"malformed bound": {
			TeacherID: 1, Date: testDate(),
			StartTime: ptr.Ptr(types.TimeString("9am")),
		},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
