package book_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/slot"
	accessCodeService "github.com/m04kA/PTC-AppointmentService/internal/service/accesscode"
	"github.com/m04kA/PTC-AppointmentService/pkg/ptr"
)

// memStore is an in-memory stand-in for the slot/appointment/audit tables.
// The fake transaction manager serializes access and rolls the maps back on
// error, mimicking commit/rollback semantics.
type memStore struct {
	mu           sync.Mutex
	slots        map[int64]domain.AvailabilitySlot
	appointments map[int64]domain.Appointment
	audit        []domain.AuditRecord
	nextID       int64
	auditErr     error
}

func newMemStore() *memStore {
	return &memStore{
		slots:        make(map[int64]domain.AvailabilitySlot),
		appointments: make(map[int64]domain.Appointment),
		nextID:       1,
	}
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.AvailabilitySlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (s *memStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = s.nextID
	s.nextID++
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	s.appointments[appt.ID] = *appt
	return appt, nil
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
	if s.auditErr != nil {
		return s.auditErr
	}
	s.audit = append(s.audit, *record)
	return nil
}

type snapshot struct {
	appointments map[int64]domain.Appointment
	audit        []domain.AuditRecord
	nextID       int64
}

func (s *memStore) snapshot() snapshot {
	appts := make(map[int64]domain.Appointment, len(s.appointments))
	for id, appt := range s.appointments {
		appts[id] = appt
	}
	return snapshot{
		appointments: appts,
		audit:        append([]domain.AuditRecord(nil), s.audit...),
		nextID:       s.nextID,
	}
}

func (s *memStore) restore(snap snapshot) {
	s.appointments = snap.appointments
	s.audit = snap.audit
	s.nextID = snap.nextID
}

// memTxManager serializes units of work over the shared store, restoring the
// pre-transaction state when fn fails.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeResolver struct {
	contexts map[string]*domain.AccessCodeContext
}

func (f *fakeResolver) Resolve(_ context.Context, code string) (*domain.AccessCodeContext, error) {
	access, ok := f.contexts[code]
	if !ok {
		return nil, accessCodeService.ErrAccessCodeNotFound
	}
	return access, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func referenceTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestUseCase(store *memStore, resolver *fakeResolver) *UseCase {
	uc := NewUseCase(store, store, store, resolver, &memTxManager{store: store}, nopLogger{})
	uc.timeProvider = &fixedClock{now: referenceTime()}
	return uc
}

func seedSlot(store *memStore, id, teacherID int64) {
	store.slots[id] = domain.AvailabilitySlot{
		ID:           id,
		TeacherID:    teacherID,
		Date:         time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:20",
		EndTime:      "09:40",
		SlotDuration: 20,
		Visible:      true,
	}
}

func seedResolver(code string, studentID int64, teacherIDs ...int64) *fakeResolver {
	teachers := make([]domain.EligibleTeacher, 0, len(teacherIDs))
	for _, id := range teacherIDs {
		teachers = append(teachers, domain.EligibleTeacher{TeacherID: id, Name: "T", Role: domain.RoleMentor})
	}
	return &fakeResolver{contexts: map[string]*domain.AccessCodeContext{
		code: {
			Student:          domain.Student{ID: studentID, ClassID: 1, SchoolYear: "2024-2025"},
			EligibleTeachers: teachers,
		},
	}}
}

func validRequest() *Request {
	return &Request{
		AccessCode:         "K7KQ2M9X",
		TeacherID:          1,
		AvailabilitySlotID: 10,
		ParentName:         "J. Jansen",
		ParentEmail:        "jansen@example.org",
		ParentPhone:        "+31612345678",
	}
}

func TestExecute_Success(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 10, 1)
	uc := newTestUseCase(store, seedResolver("K7KQ2M9X", 42, 1))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Scheduled", resp.Status)
	assert.Equal(t, int64(10), resp.AvailabilitySlotID)
	assert.Equal(t, int64(42), resp.StudentID)

	// Date and times are copied from the slot, not re-derived.
	assert.Equal(t, "09:20", resp.StartTime.String())
	assert.Equal(t, "09:40", resp.EndTime.String())
	assert.Equal(t, 20, resp.SlotDuration)

	// Exactly one audit fact in the same unit of work.
	require.Len(t, store.audit, 1)
	assert.Equal(t, domain.ActionCreateAppointment, store.audit[0].Action)
	assert.Equal(t, resp.ID, store.audit[0].EntityID)
}

func TestExecute_NoDoubleBooking(t *testing.T) {
	const workers = 32

	store := newMemStore()
	seedSlot(store, 10, 1)
	uc := newTestUseCase(store, seedResolver("K7KQ2M9X", 42, 1))

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent booking must win")
	assert.Len(t, store.appointments, 1)
	assert.Len(t, store.audit, 1)
}

func TestExecute_InvalidAccessCode(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 10, 1)
	uc := newTestUseCase(store, seedResolver("OTHER123", 42, 1))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
	assert.Empty(t, store.appointments)
}

func TestExecute_SlotUnavailableVariants(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *memStore, req *Request) *fakeResolver
	}{
		{
			name: "slot does not exist",
			setup: func(store *memStore, req *Request) *fakeResolver {
				req.AvailabilitySlotID = 999
				return seedResolver("K7KQ2M9X", 42, 1)
			},
		},
		{
			name: "slot owned by another teacher",
			setup: func(store *memStore, req *Request) *fakeResolver {
				seedSlot(store, 10, 7)
				return seedResolver("K7KQ2M9X", 42, 1)
			},
		},
		{
			name: "slot not visible",
			setup: func(store *memStore, req *Request) *fakeResolver {
				seedSlot(store, 10, 1)
				slot := store.slots[10]
				slot.Visible = false
				store.slots[10] = slot
				return seedResolver("K7KQ2M9X", 42, 1)
			},
		},
		{
			name: "teacher not in eligible set",
			setup: func(store *memStore, req *Request) *fakeResolver {
				seedSlot(store, 10, 1)
				return seedResolver("K7KQ2M9X", 42, 5)
			},
		},
		{
			name: "slot date already passed",
			setup: func(store *memStore, req *Request) *fakeResolver {
				seedSlot(store, 10, 1)
				slot := store.slots[10]
				slot.Date = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
				store.slots[10] = slot
				return seedResolver("K7KQ2M9X", 42, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			req := validRequest()
			resolver := tt.setup(store, req)
			uc := newTestUseCase(store, resolver)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotUnavailable)
			assert.Empty(t, store.appointments)
			assert.Empty(t, store.audit)
		})
	}
}

func TestExecute_AuditFailureRollsBackBooking(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 10, 1)
	store.auditErr = errors.New("audit storage unavailable")
	uc := newTestUseCase(store, seedResolver("K7KQ2M9X", 42, 1))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)

	// The appointment insert is rolled back together with the failed audit write.
	assert.Empty(t, store.appointments)
	assert.Empty(t, store.audit)
}

func TestExecute_SecondBookingAfterCancellationSucceeds(t *testing.T) {
	store := newMemStore()
	seedSlot(store, 10, 1)
	uc := newTestUseCase(store, seedResolver("K7KQ2M9X", 42, 1))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Cancel the appointment directly in the store; the slot itself is untouched.
	appt := store.appointments[resp.ID]
	appt.Status = domain.StatusCancelled
	appt.CancelledBy = ptr.Ptr(domain.CancelledByTeacher)
	appt.CancellationReason = ptr.Ptr("Illness")
	appt.CancelledAt = ptr.Ptr(referenceTime())
	store.appointments[resp.ID] = appt

	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, second.ID)
}

func TestExecute_InvalidInput(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store, seedResolver("K7KQ2M9X", 42, 1))

	for name, mutate := range map[string]func(r *Request){
		"empty access code": func(r *Request) { r.AccessCode = "  " },
		"zero teacher":      func(r *Request) { r.TeacherID = 0 },
		"zero slot":         func(r *Request) { r.AvailabilitySlotID = 0 },
		"empty parent name": func(r *Request) { r.ParentName = "" },
		"bad email":         func(r *Request) { r.ParentEmail = "not-an-email" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
