package declare_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

type memStore struct {
	slots    map[int64]domain.AvailabilitySlot
	audit    []domain.AuditRecord
	nextID   int64
	auditErr error
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[int64]domain.AvailabilitySlot), nextID: 1}
}

func (s *memStore) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	slot.ID = s.nextID
	s.nextID++
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	s.slots[slot.ID] = *slot
	return slot, nil
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

func (s *memStore) Append(_ context.Context, record *domain.AuditRecord) error {
	if s.auditErr != nil {
		return s.auditErr
	}
	s.audit = append(s.audit, *record)
	return nil
}

type snapshot struct {
	slots  map[int64]domain.AvailabilitySlot
	audit  []domain.AuditRecord
	nextID int64
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	slots := make(map[int64]domain.AvailabilitySlot, len(m.store.slots))
	for id, slot := range m.store.slots {
		slots[id] = slot
	}
	snap := snapshot{
		slots:  slots,
		audit:  append([]domain.AuditRecord(nil), m.store.audit...),
		nextID: m.store.nextID,
	}
	if err := fn(ctx); err != nil {
		m.store.slots = snap.slots
		m.store.audit = snap.audit
		m.store.nextID = snap.nextID
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
	return NewUseCase(store, store, &memTxManager{store: store}, nopLogger{})
}

func TestExecute_PartitionsWindow(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "09:00",
		EndTime:      "09:47",
		SlotDuration: 15,
	})
	require.NoError(t, err)

	// Неполный остаток 09:45-09:47 отброшен.
	require.Len(t, resp.Created, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Created[0].StartTime)
	assert.Equal(t, types.TimeString("09:15"), resp.Created[0].EndTime)
	assert.Equal(t, types.TimeString("09:15"), resp.Created[1].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Created[1].EndTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Created[2].StartTime)
	assert.Equal(t, types.TimeString("09:45"), resp.Created[2].EndTime)

	for _, slot := range resp.Created {
		assert.True(t, slot.Visible)
		assert.Equal(t, 15, slot.SlotDuration)
	}

	require.Len(t, store.audit, 1)
	assert.Equal(t, domain.ActionCreateAvailability, store.audit[0].Action)
	require.NotNil(t, store.audit[0].ActorUserID)
	assert.Equal(t, int64(1), *store.audit[0].ActorUserID)
}

func TestExecute_RedeclareIsIdempotent(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	req := &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "10:00",
		EndTime:      "11:00",
		SlotDuration: 20,
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Created, 3)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повторное объявление не создает дубликатов и не пишет аудит.
	assert.Empty(t, second.Created)
	assert.Len(t, store.slots, 3)
	assert.Len(t, store.audit, 1)
}

func TestExecute_FillsGapOnOverlappingDeclare(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "10:00",
		EndTime:      "10:40",
		SlotDuration: 20,
	})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "10:00",
		EndTime:      "11:00",
		SlotDuration: 20,
	})
	require.NoError(t, err)

	// Из расширенного окна создается только недостающий слот 10:40-11:00.
	require.Len(t, resp.Created, 1)
	assert.Equal(t, types.TimeString("10:40"), resp.Created[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Created[0].EndTime)
	assert.Len(t, store.slots, 3)
}

func TestExecute_SameWindowDifferentTeachers(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	req := &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "10:00",
		EndTime:      "10:30",
		SlotDuration: 30,
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	other := *req
	other.TeacherID = 2
	resp, err := uc.Execute(context.Background(), &other)
	require.NoError(t, err)

	assert.Len(t, resp.Created, 1)
	assert.Len(t, store.slots, 2)
}

func TestExecute_InvalidWindow(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	tests := map[string]*Request{
		"start equals end": {
			TeacherID: 1, Date: testDate(),
			StartTime: "10:00", EndTime: "10:00", SlotDuration: 15,
		},
		"start after end": {
			TeacherID: 1, Date: testDate(),
			StartTime: "11:00", EndTime: "10:00", SlotDuration: 15,
		},
		"window shorter than one slot": {
			TeacherID: 1, Date: testDate(),
			StartTime: "10:00", EndTime: "10:10", SlotDuration: 15,
		},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidWindow)
			assert.Empty(t, store.slots)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	tests := map[string]*Request{
		"zero teacher": {
			Date: testDate(), StartTime: "10:00", EndTime: "11:00", SlotDuration: 15,
		},
		"zero date": {
			TeacherID: 1, StartTime: "10:00", EndTime: "11:00", SlotDuration: 15,
		},
		"malformed start time": {
			TeacherID: 1, Date: testDate(),
			StartTime: "25:99", EndTime: "11:00", SlotDuration: 15,
		},
		"duration below minimum": {
			TeacherID: 1, Date: testDate(),
			StartTime: "10:00", EndTime: "11:00", SlotDuration: 5,
		},
		"duration above maximum": {
			TeacherID: 1, Date: testDate(),
			StartTime: "10:00", EndTime: "11:00", SlotDuration: 45,
		},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_AuditFailureRollsBackSlots(t *testing.T) {
	store := newMemStore()
	store.auditErr = errors.New("audit storage unavailable")
	uc := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{
		TeacherID:    1,
		Date:         testDate(),
		StartTime:    "10:00",
		EndTime:      "11:00",
		SlotDuration: 20,
	})
	require.ErrorIs(t, err, ErrInternal)

	assert.Empty(t, store.slots)
	assert.Empty(t, store.audit)
}
