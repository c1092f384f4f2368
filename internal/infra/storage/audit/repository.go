package audit

import (
	"context"
	"fmt"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	"github.com/m04kA/PTC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала аудита
// Факт аудита пишется тем же executor'ом, что и мутация: внутри транзакции
// запись журнала коммитится или откатывается вместе с самой операцией
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет одну запись в журнал аудита
func (r *Repository) Append(ctx context.Context, record *domain.AuditRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns(
			"action",
			"entity_type",
			"entity_id",
			"details",
			"actor_user_id",
		).
		Values(
			record.Action,
			record.EntityType,
			record.EntityID,
			record.Details,
			record.ActorUserID,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
