package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/appointment"
	accessCodeService "github.com/m04kA/PTC-AppointmentService/internal/service/accesscode"
)

// UseCase use case отмены записи на встречу
type UseCase struct {
	appointmentRepo AppointmentRepository
	auditRepo       AuditRepository
	resolver        AccessCodeResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	auditRepo AuditRepository,
	resolver AccessCodeResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
		resolver:        resolver,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет отмену записи
// Статус и метаданные отмены (кто, причина, когда) меняются одним UPDATE
// в транзакции вместе с фактом аудита: частично отмененных записей не бывает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: id=%d, actor=%s", req.AppointmentID, req.Actor)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// Для родителя код доступа разрешается вне транзакции
	var studentID int64
	if req.Actor == domain.CancelledByParent {
		access, err := uc.resolver.Resolve(ctx, req.AccessCode)
		if err != nil {
			if errors.Is(err, accessCodeService.ErrAccessCodeNotFound) ||
				errors.Is(err, accessCodeService.ErrInvalidInput) {
				uc.logger.Warn("CancelAppointment: access code not recognized")
				return nil, ErrInvalidAccessCode
			}
			uc.logger.Error("CancelAppointment: failed to resolve access code: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve access code: %v", ErrInternal, err)
		}
		studentID = access.Student.ID
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if err := uc.authorize(req, appt, studentID); err != nil {
			return err
		}

		if appt.IsCancelled() {
			uc.logger.Warn("CancelAppointment: appointment=%d already cancelled", appt.ID)
			return ErrAlreadyCancelled
		}

		now := uc.timeProvider.Now()

		// Родитель не может отменить встречу, день которой уже прошел.
		// Учителю отмена задним числом разрешена (фиксация неявки)
		if req.Actor == domain.CancelledByParent && isDateInPast(appt.Date, now) {
			uc.logger.Warn("CancelAppointment: appointment=%d is in the past (%s)",
				appt.ID, appt.Date.Format(domain.DateFormat))
			return ErrAppointmentInPast
		}

		reason := resolveReason(req)

		if err := uc.appointmentRepo.Cancel(txCtx, appt.ID, req.Actor, reason, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to cancel appointment=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		record := &domain.AuditRecord{
			Action:     domain.ActionCancelAppointment,
			EntityType: domain.EntityAppointment,
			EntityID:   appt.ID,
			Details: fmt.Sprintf("actor=%s slot=%d teacher=%d student=%d reason=%q",
				req.Actor, appt.AvailabilitySlotID, appt.TeacherID, appt.StudentID, reason),
		}
		if req.Actor == domain.CancelledByTeacher {
			record.ActorUserID = &req.TeacherID
		}
		if err := uc.auditRepo.Append(txCtx, record); err != nil {
			uc.logger.Error("CancelAppointment: failed to append audit record: %v", err)
			return fmt.Errorf("%w: failed to append audit record: %v", ErrInternal, err)
		}

		result = &Response{
			ID:                 appt.ID,
			AvailabilitySlotID: appt.AvailabilitySlotID,
			TeacherID:          appt.TeacherID,
			StudentID:          appt.StudentID,
			Date:               appt.Date,
			StartTime:          appt.StartTime,
			EndTime:            appt.EndTime,
			Status:             string(domain.StatusCancelled),
			CancelledBy:        string(req.Actor),
			CancellationReason: reason,
			CancelledAt:        now,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment=%d cancelled by %s", result.ID, result.CancelledBy)
	return result, nil
}

// authorize проверяет право актора на отмену записи
// Родитель должен быть родителем студента по записи, учитель - ее владельцем
func (uc *UseCase) authorize(req *Request, appt *domain.Appointment, studentID int64) error {
	switch req.Actor {
	case domain.CancelledByParent:
		if appt.StudentID != studentID {
			uc.logger.Warn("CancelAppointment: appointment=%d belongs to student=%d, not %d",
				appt.ID, appt.StudentID, studentID)
			return ErrForbidden
		}
	case domain.CancelledByTeacher:
		if appt.TeacherID != req.TeacherID {
			uc.logger.Warn("CancelAppointment: appointment=%d belongs to teacher=%d, not %d",
				appt.ID, appt.TeacherID, req.TeacherID)
			return ErrForbidden
		}
	}
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	switch req.Actor {
	case domain.CancelledByParent:
		if strings.TrimSpace(req.AccessCode) == "" {
			return fmt.Errorf("%w: access code is required for parent cancellation", ErrInvalidInput)
		}
	case domain.CancelledByTeacher:
		if req.TeacherID <= 0 {
			return fmt.Errorf("%w: teacherID must be positive for teacher cancellation", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown actor %q", ErrInvalidInput, req.Actor)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// resolveReason возвращает причину отмены, подставляя дефолт по актору
func resolveReason(req *Request) string {
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		return strings.TrimSpace(*req.Reason)
	}
	if req.Actor == domain.CancelledByTeacher {
		return domain.DefaultTeacherCancellationReason
	}
	return domain.DefaultParentCancellationReason
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравнение только по календарной дате, время суток не учитывается
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
