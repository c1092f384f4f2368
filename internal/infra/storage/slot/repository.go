package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/PTC-AppointmentService/pkg/types"
)

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот доступности
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"teacher_id",
			"date",
			"start_time",
			"end_time",
			"slot_duration",
			"visible",
			"notes",
		).
		Values(
			slot.TeacherID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.SlotDuration,
			slot.Visible,
			slot.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE) - это критическая секция
// бронирования: проверка доступности и создание записи должны видеть
// согласованное состояние слота
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"teacher_id",
		"date",
		"start_time",
		"end_time",
		"slot_duration",
		"visible",
		"notes",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.SlotDuration,
		&slot.Visible,
		&slot.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// ListWithFilter получает слоты учителя с гибкой фильтрацией
// ExcludeBooked исключает слоты с активной (Scheduled) записью - запрос
// родителя видит только реально доступные слоты
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"teacher_id",
		"date",
		"start_time",
		"end_time",
		"slot_duration",
		"visible",
		"notes",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"teacher_id": filter.TeacherID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.OnlyVisible {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"visible": true})
	}
	if filter.ExcludeBooked {
		selectBuilder = selectBuilder.Where(
			"NOT EXISTS (SELECT 1 FROM appointments a WHERE a.availability_slot_id = availability_slots.id AND a.status = ?)",
			string(domain.StatusScheduled),
		)
	}

	selectBuilder = selectBuilder.OrderBy("date ASC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListByWindow получает слоты учителя на дату с опциональными границами по времени
// Используется в транзакциях объявления доступности (проверка дубликатов) и
// удаления (проверка активных записей), поэтому внутри транзакции строки
// блокируются (FOR UPDATE)
func (r *Repository) ListByWindow(ctx context.Context, teacherID int64, date time.Time, startTime, endTime *types.TimeString) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"teacher_id",
		"date",
		"start_time",
		"end_time",
		"slot_duration",
		"visible",
		"notes",
		"created_at",
		"updated_at",
	).
		From("availability_slots").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		Where(squirrel.Eq{"date": date})

	if startTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *startTime})
	}
	if endTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_time": *endTime})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// DeleteByIDs удаляет слоты по списку ID
// Возвращает количество удаленных строк
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		var slot domain.AvailabilitySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.SlotDuration,
			&slot.Visible,
			&slot.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
