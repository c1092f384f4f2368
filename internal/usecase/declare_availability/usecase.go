package declare_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/internal/slotgen"
)

// UseCase use case объявления окна доступности учителя
type UseCase struct {
	slotRepo  SlotRepository
	auditRepo AuditRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет объявление окна доступности
// Повторное объявление того же окна идемпотентно: уже существующие слоты
// с совпадающим (дата, начало, конец) пропускаются, создаются только новые
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeclareAvailability: teacher=%d, date=%s, window=%s-%s, duration=%d",
		req.TeacherID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.SlotDuration)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeclareAvailability: validation failed: %v", err)
		return nil, err
	}

	// Нарезка окна детерминирована и не зависит от состояния БД,
	// выполняем ее до открытия транзакции
	candidates, err := slotgen.Generate(req.StartTime, req.EndTime, req.SlotDuration)
	if err != nil {
		if errors.Is(err, slotgen.ErrInvalidWindow) {
			uc.logger.Warn("DeclareAvailability: invalid window: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		uc.logger.Error("DeclareAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: window %s-%s does not fit a single %d-minute slot",
			ErrInvalidWindow, req.StartTime, req.EndTime, req.SlotDuration)
	}

	var created []SlotResponse

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Существующие слоты учителя на эту дату читаются FOR UPDATE:
		// конкурентное объявление того же окна не создаст дубликатов
		existing, err := uc.slotRepo.ListByWindow(txCtx, req.TeacherID, req.Date, nil, nil)
		if err != nil {
			uc.logger.Error("DeclareAvailability: failed to list existing slots: %v", err)
			return fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
		}

		for _, candidate := range candidates {
			if windowExists(existing, req, candidate) {
				continue
			}

			slot := &domain.AvailabilitySlot{
				TeacherID:    req.TeacherID,
				Date:         req.Date,
				StartTime:    candidate.StartTime,
				EndTime:      candidate.EndTime,
				SlotDuration: req.SlotDuration,
				Visible:      true,
				Notes:        req.Notes,
			}

			stored, err := uc.slotRepo.Create(txCtx, slot)
			if err != nil {
				uc.logger.Error("DeclareAvailability: failed to create slot %s-%s: %v",
					candidate.StartTime, candidate.EndTime, err)
				return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}

			created = append(created, SlotResponse{
				ID:           stored.ID,
				TeacherID:    stored.TeacherID,
				Date:         stored.Date,
				StartTime:    stored.StartTime,
				EndTime:      stored.EndTime,
				SlotDuration: stored.SlotDuration,
				Visible:      stored.Visible,
				Notes:        stored.Notes,
				CreatedAt:    stored.CreatedAt,
			})
		}

		if len(created) == 0 {
			return nil
		}

		record := &domain.AuditRecord{
			Action:      domain.ActionCreateAvailability,
			EntityType:  domain.EntityAvailabilitySlot,
			EntityID:    created[0].ID,
			ActorUserID: &req.TeacherID,
			Details: fmt.Sprintf("teacher=%d date=%s window=%s-%s duration=%d created=%d",
				req.TeacherID, req.Date.Format(domain.DateFormat),
				req.StartTime, req.EndTime, req.SlotDuration, len(created)),
		}
		if err := uc.auditRepo.Append(txCtx, record); err != nil {
			uc.logger.Error("DeclareAvailability: failed to append audit record: %v", err)
			return fmt.Errorf("%w: failed to append audit record: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeclareAvailability: created %d slot(s) for teacher=%d", len(created), req.TeacherID)
	return &Response{Created: created}, nil
}

// windowExists проверяет, есть ли среди существующих слотов слот
// с тем же окном, что и у кандидата
func windowExists(existing []*domain.AvailabilitySlot, req *Request, candidate slotgen.Slot) bool {
	for _, slot := range existing {
		if slot.SameWindow(req.Date, candidate.StartTime, candidate.EndTime) {
			return true
		}
	}
	return false
}
