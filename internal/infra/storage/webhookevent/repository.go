package webhookevent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/psqlbuilder"
)

const tableWebhookEvents = "webhook_events"

// Repository журнал принятых событий платежного провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record отмечает событие принятым.
// Возвращает false, если событие с таким id уже было записано.
// Вызывается в той же транзакции, что и побочные эффекты события:
// при откате отметка тоже исчезает и повтор обработается заново.
func (r *Repository) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableWebhookEvents).
		Columns("event_id", "event_type").
		Values(eventID, eventType).
		Suffix("ON CONFLICT (event_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Record - execute insert: %w", ErrExecQuery, err)
	}
	return true, nil
}
