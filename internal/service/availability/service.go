package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/internal/service/availability/models"
)

// Service read-сервис слотов доступности
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// ListOpen получает слоты учителя за период
// По умолчанию (IncludeBooked=false, родительский запрос) слоты с активной
// записью исключаются и выдаются только видимые слоты. Отмененная запись
// слот не занимает - он снова попадает в выдачу
func (s *Service) ListOpen(ctx context.Context, req *models.ListOpenSlotsRequest) (*models.SlotListResponse, error) {
	if req.TeacherID <= 0 {
		return nil, fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter := domain.SlotFilter{
		TeacherID:     req.TeacherID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		OnlyVisible:   !req.IncludeBooked,
		ExcludeBooked: !req.IncludeBooked,
	}

	slots, err := s.slotRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListOpen: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: ListOpen - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOpen: fetched %d slots for teacher=%d (includeBooked=%t)",
		len(slots), req.TeacherID, req.IncludeBooked)

	return models.FromDomainSlotList(slots), nil
}
