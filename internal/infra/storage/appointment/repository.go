package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на встречи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на встречу
// Вызывается только внутри транзакции бронирования: проверка доступности
// слота и вставка должны быть атомарными
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"availability_slot_id",
			"teacher_id",
			"student_id",
			"parent_name",
			"parent_email",
			"parent_phone",
			"date",
			"start_time",
			"end_time",
			"slot_duration",
			"notes",
			"status",
		).
		Values(
			appt.AvailabilitySlotID,
			appt.TeacherID,
			appt.StudentID,
			appt.ParentName,
			appt.ParentEmail,
			appt.ParentPhone,
			appt.Date,
			appt.StartTime,
			appt.EndTime,
			appt.SlotDuration,
			appt.Notes,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE) - отмена и бронирование
// одной записи взаимно исключаются через этот же механизм
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectAppointments().
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appts[0], nil
}

// ListScheduledBySlotIDs получает ID активных (Scheduled) записей на указанные слоты
// Внутри транзакции строки блокируются (FOR UPDATE): конкурирующие бронирования
// одного слота сериализуются, первый коммит выигрывает
func (r *Repository) ListScheduledBySlotIDs(ctx context.Context, slotIDs []int64) ([]int64, error) {
	if len(slotIDs) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("appointments").
		Where(squirrel.Eq{"availability_slot_id": slotIDs}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBySlotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBySlotIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListScheduledBySlotIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBySlotIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// GetByTeacherWithFilter получает записи учителя с фильтрацией по периоду
// и включению отмененных
func (r *Repository) GetByTeacherWithFilter(ctx context.Context, filter domain.TeacherAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectAppointments().
		Where(squirrel.Eq{"teacher_id": filter.TeacherID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusScheduled})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeacherWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTeacherWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Cancel переводит запись в статус Cancelled
// Все четыре поля отмены записываются одним UPDATE - атомарность "все или ничего"
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy domain.CancelledBy, reason string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) selectAppointments() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"availability_slot_id",
		"teacher_id",
		"student_id",
		"parent_name",
		"parent_email",
		"parent_phone",
		"date",
		"start_time",
		"end_time",
		"slot_duration",
		"notes",
		"status",
		"cancelled_by",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("appointments")
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime
		var cancelledBy sql.NullString

		err := rows.Scan(
			&appt.ID,
			&appt.AvailabilitySlotID,
			&appt.TeacherID,
			&appt.StudentID,
			&appt.ParentName,
			&appt.ParentEmail,
			&appt.ParentPhone,
			&appt.Date,
			&appt.StartTime,
			&appt.EndTime,
			&appt.SlotDuration,
			&appt.Notes,
			&appt.Status,
			&cancelledBy,
			&appt.CancellationReason,
			&appt.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if cancelledBy.Valid {
			parsed, err := domain.ParseCancelledBy(cancelledBy.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanAppointments - %v", ErrScanRow, err)
			}
			appt.CancelledBy = &parsed
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
