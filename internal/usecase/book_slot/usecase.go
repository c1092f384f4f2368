package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/slot"
	accessCodeService "github.com/m04kA/PTC-AppointmentService/internal/service/accesscode"
)

// UseCase use case бронирования слота родителем
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	auditRepo       AuditRepository
	resolver        AccessCodeResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	auditRepo AuditRepository,
	resolver AccessCodeResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		resolver:        resolver,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования
// Проверка доступности слота и создание записи выполняются в одной
// сериализуемой транзакции: из конкурирующих бронирований одного слота
// коммитится ровно одно, остальные получают ErrSlotUnavailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: teacher=%d, slot=%d", req.TeacherID, req.AvailabilitySlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем код доступа (вне транзакции - read-only справочные данные)
	access, err := uc.resolver.Resolve(ctx, req.AccessCode)
	if err != nil {
		if errors.Is(err, accessCodeService.ErrAccessCodeNotFound) ||
			errors.Is(err, accessCodeService.ErrInvalidInput) {
			uc.logger.Warn("BookSlot: access code not recognized")
			return nil, ErrInvalidAccessCode
		}
		uc.logger.Error("BookSlot: failed to resolve access code: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve access code: %v", ErrInternal, err)
	}

	// 3. Учитель должен входить в допустимый набор для студента
	// Ответ не различает "учитель недоступен" и "слот занят" - родителю
	// не раскрывается структура чужих данных
	if !access.IsTeacherEligible(req.TeacherID) {
		uc.logger.Warn("BookSlot: teacher=%d is not eligible for student=%d",
			req.TeacherID, access.Student.ID)
		return nil, ErrSlotUnavailable
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Критическая секция: перечитываем слот и активные записи под блокировкой
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Слот существует, принадлежит учителю и видим родителям
		slot, err := uc.slotRepo.GetByID(txCtx, req.AvailabilitySlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookSlot: slot=%d not found", req.AvailabilitySlotID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("BookSlot: failed to get slot=%d: %v", req.AvailabilitySlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.TeacherID != req.TeacherID || !slot.Visible {
			uc.logger.Warn("BookSlot: slot=%d not bookable (owner=%d, visible=%t)",
				slot.ID, slot.TeacherID, slot.Visible)
			return ErrSlotUnavailable
		}

		// Слот в прошедший день бронировать нельзя
		if isDateInPast(slot.Date, uc.timeProvider.Now()) {
			uc.logger.Warn("BookSlot: slot=%d is in the past (%s)",
				slot.ID, slot.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 4.2. Слот не должен иметь активной записи
		scheduled, err := uc.appointmentRepo.ListScheduledBySlotIDs(txCtx, []int64{slot.ID})
		if err != nil {
			uc.logger.Error("BookSlot: failed to check scheduled appointments for slot=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to check scheduled appointments: %v", ErrInternal, err)
		}
		if len(scheduled) > 0 {
			uc.logger.Warn("BookSlot: slot=%d already booked", slot.ID)
			return ErrSlotUnavailable
		}

		// 4.3. Создаем запись, копируя дату и время из слота:
		// последующее изменение слота не должно менять подтвержденную запись
		appt := &domain.Appointment{
			AvailabilitySlotID: slot.ID,
			TeacherID:          slot.TeacherID,
			StudentID:          access.Student.ID,
			ParentName:         req.ParentName,
			ParentEmail:        req.ParentEmail,
			ParentPhone:        req.ParentPhone,
			Date:               slot.Date,
			StartTime:          slot.StartTime,
			EndTime:            slot.EndTime,
			SlotDuration:       slot.SlotDuration,
			Notes:              req.Notes,
			Status:             domain.StatusScheduled,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookSlot: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 4.4. Факт аудита пишется в той же транзакции: неудачная запись
		// журнала откатывает бронирование целиком
		record := &domain.AuditRecord{
			Action:     domain.ActionCreateAppointment,
			EntityType: domain.EntityAppointment,
			EntityID:   created.ID,
			Details: fmt.Sprintf("slot=%d teacher=%d student=%d date=%s time=%s-%s",
				slot.ID, slot.TeacherID, access.Student.ID,
				slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime),
		}
		if err := uc.auditRepo.Append(txCtx, record); err != nil {
			uc.logger.Error("BookSlot: failed to append audit record: %v", err)
			return fmt.Errorf("%w: failed to append audit record: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: successfully created appointment id=%d for slot=%d",
		result.ID, result.AvailabilitySlotID)

	return &Response{
		ID:                 result.ID,
		AvailabilitySlotID: result.AvailabilitySlotID,
		TeacherID:          result.TeacherID,
		StudentID:          result.StudentID,
		ParentName:         result.ParentName,
		ParentEmail:        result.ParentEmail,
		ParentPhone:        result.ParentPhone,
		Date:               result.Date,
		StartTime:          result.StartTime,
		EndTime:            result.EndTime,
		SlotDuration:       result.SlotDuration,
		Notes:              result.Notes,
		Status:             string(result.Status),
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}
