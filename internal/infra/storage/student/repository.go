package student

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/psqlbuilder"
)

// Repository read-репозиторий для разрешения кодов доступа
// Загруженные ORM-ассоциации исходной схемы (student -> class -> teachers)
// выражены явными join-запросами, возвращающими готовые DTO
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByAccessCode получает студента вместе с классом и учебным годом по коду доступа
// Код доступа - непрозрачный ключ, никакого парсинга
func (r *Repository) GetByAccessCode(ctx context.Context, accessCode string) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.name",
		"c.id",
		"c.name",
		"c.school_year",
	).
		From("students s").
		Join("classes c ON c.id = s.class_id").
		Where(squirrel.Eq{"s.access_code": accessCode}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAccessCode - build select query: %v", ErrBuildQuery, err)
	}

	var student domain.Student
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&student.ID,
		&student.Name,
		&student.ClassID,
		&student.ClassName,
		&student.SchoolYear,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAccessCode - scan student: %v", ErrScanRow, err)
	}

	return &student, nil
}

// ListEligibleTeachers получает активных сотрудников с ролями, допускающими
// запись родителей, ассоциированных с классом на указанный учебный год.
// Флаг основного наставника приходит из связи учитель-класс.
// Сортировка здесь первичная (по имени), итоговый порядок выдачи
// (наставники первыми) применяет сервис
func (r *Repository) ListEligibleTeachers(ctx context.Context, classID int64, schoolYear string) ([]*domain.EligibleTeacher, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roles := make([]string, len(domain.EligibleRoles))
	for i, role := range domain.EligibleRoles {
		roles[i] = string(role)
	}

	query, args, err := psqlbuilder.Select(
		"u.id",
		"u.name",
		"u.role",
		"tc.is_primary_mentor",
	).
		From("users u").
		Join("teacher_classes tc ON tc.teacher_id = u.id").
		Where(squirrel.Eq{"tc.class_id": classID}).
		Where(squirrel.Eq{"tc.school_year": schoolYear}).
		Where(squirrel.Eq{"u.role": roles}).
		Where(squirrel.Eq{"u.is_active": true}).
		OrderBy("u.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleTeachers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEligibleTeachers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teachers := make([]*domain.EligibleTeacher, 0)
	for rows.Next() {
		var teacher domain.EligibleTeacher
		var role string

		if err := rows.Scan(&teacher.TeacherID, &teacher.Name, &role, &teacher.IsPrimaryMentor); err != nil {
			return nil, fmt.Errorf("%w: ListEligibleTeachers - scan row: %v", ErrScanRow, err)
		}

		parsed, err := domain.ParseTeacherRole(role)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEligibleTeachers - %v", ErrScanRow, err)
		}
		teacher.Role = parsed

		teachers = append(teachers, &teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEligibleTeachers - rows error: %v", ErrScanRow, err)
	}

	return teachers, nil
}
