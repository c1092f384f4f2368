package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/internal/service/availability/models"
)

type fakeSlotRepo struct {
	slots      []*domain.AvailabilitySlot
	lastFilter domain.SlotFilter
	err        error
}

func (f *fakeSlotRepo) ListWithFilter(_ context.Context, filter domain.SlotFilter) ([]*domain.AvailabilitySlot, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestListOpen_ParentViewFilters(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.AvailabilitySlot{
		{
			ID:           1,
			TeacherID:    5,
			Date:         time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			StartTime:    "09:00",
			EndTime:      "09:20",
			SlotDuration: 20,
			Visible:      true,
		},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListOpen(context.Background(), &models.ListOpenSlotsRequest{TeacherID: 5})
	require.NoError(t, err)

	// Родительский запрос: только видимые и незанятые слоты.
	assert.True(t, repo.lastFilter.OnlyVisible)
	assert.True(t, repo.lastFilter.ExcludeBooked)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-06-15", resp.Slots[0].Date)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "09:20", resp.Slots[0].EndTime)
	assert.Equal(t, 20, resp.Slots[0].SlotDuration)
}

func TestListOpen_ManagementViewIncludesBooked(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListOpen(context.Background(), &models.ListOpenSlotsRequest{
		TeacherID:     5,
		IncludeBooked: true,
	})
	require.NoError(t, err)

	assert.False(t, repo.lastFilter.OnlyVisible)
	assert.False(t, repo.lastFilter.ExcludeBooked)
}

func TestListOpen_InvalidInput(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, nopLogger{})

	t.Run("zero teacher", func(t *testing.T) {
		_, err := svc.ListOpen(context.Background(), &models.ListOpenSlotsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start", func(t *testing.T) {
		start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		_, err := svc.ListOpen(context.Background(), &models.ListOpenSlotsRequest{
			TeacherID: 5,
			StartDate: &start,
			EndDate:   &end,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListOpen_RepositoryError(t *testing.T) {
	repo := &fakeSlotRepo{err: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.ListOpen(context.Background(), &models.ListOpenSlotsRequest{TeacherID: 5})
	assert.ErrorIs(t, err, ErrInternal)
}
