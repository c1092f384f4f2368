package remove_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// UseCase use case снятия доступности учителя
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	auditRepo       AuditRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет снятие доступности
// Операция атомарна: если хотя бы один из подпадающих слотов имеет активную
// запись, не удаляется ничего и возвращается ErrSlotInUse с числом блокирующих
// записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveAvailability: teacher=%d, date=%s",
		req.TeacherID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RemoveAvailability: validation failed: %v", err)
		return nil, err
	}

	var removed []SlotResponse

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Подпадающие слоты читаются FOR UPDATE: конкурентное бронирование
		// одного из них дождется исхода удаления
		slots, err := uc.slotRepo.ListByWindow(txCtx, req.TeacherID, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		if len(slots) == 0 {
			uc.logger.Info("RemoveAvailability: no slots match for teacher=%d", req.TeacherID)
			return nil
		}

		slotIDs := make([]int64, 0, len(slots))
		for _, slot := range slots {
			slotIDs = append(slotIDs, slot.ID)
		}

		scheduled, err := uc.appointmentRepo.ListScheduledBySlotIDs(txCtx, slotIDs)
		if err != nil {
			uc.logger.Error("RemoveAvailability: failed to check scheduled appointments: %v", err)
			return fmt.Errorf("%w: failed to check scheduled appointments: %v", ErrInternal, err)
		}
		if len(scheduled) > 0 {
			uc.logger.Warn("RemoveAvailability: %d scheduled appointment(s) block removal for teacher=%d",
				len(scheduled), req.TeacherID)
			return fmt.Errorf("%w: %d active appointment(s)", ErrSlotInUse, len(scheduled))
		}

		if _, err := uc.slotRepo.DeleteByIDs(txCtx, slotIDs); err != nil {
			uc.logger.Error("RemoveAvailability: failed to delete slots: %v", err)
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}

		for _, slot := range slots {
			removed = append(removed, SlotResponse{
				ID:           slot.ID,
				TeacherID:    slot.TeacherID,
				Date:         slot.Date,
				StartTime:    slot.StartTime,
				EndTime:      slot.EndTime,
				SlotDuration: slot.SlotDuration,
			})
		}

		record := &domain.AuditRecord{
			Action:      domain.ActionDeleteAvailability,
			EntityType:  domain.EntityAvailabilitySlot,
			EntityID:    slotIDs[0],
			ActorUserID: &req.TeacherID,
			Details: fmt.Sprintf("teacher=%d date=%s removed=%d",
				req.TeacherID, req.Date.Format(domain.DateFormat), len(slotIDs)),
		}
		if err := uc.auditRepo.Append(txCtx, record); err != nil {
			uc.logger.Error("RemoveAvailability: failed to append audit record: %v", err)
			return fmt.Errorf("%w: failed to append audit record: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RemoveAvailability: removed %d slot(s) for teacher=%d", len(removed), req.TeacherID)
	return &Response{Removed: removed}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, *req.StartTime)
		}
	}
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, *req.EndTime)
		}
	}
	if req.StartTime != nil && req.EndTime != nil && !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return nil
}
