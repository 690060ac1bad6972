package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/pgerrors"
)

var (
	// ErrBeginTx не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRollback не удалось откатить транзакцию
	ErrRollback = errors.New("txmanager: failed to rollback transaction")

	// ErrSerialization конкурентная транзакция изменила те же данные, операцию можно повторить
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// serializationTracker транзакция, которая помнит конфликт сериализации в своих запросах
type serializationTracker interface {
	SerializationFailed() bool
}

// TransactionManager единица работы: открывает транзакцию, кладет ее в контекст
// и гарантирует commit или rollback на любом пути выхода, включая панику.
type TransactionManager struct {
	db dbmetrics.TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if fnErr := fn(dbmetrics.WithTx(ctx, tx)); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: %v (original error: %w)", ErrRollback, rbErr, fnErr)
		}
		// 40001 мог прийти от любого запроса, а не только от COMMIT
		if isSerializationFailure(tx, fnErr) {
			return fmt.Errorf("%w: %v", ErrSerialization, fnErr)
		}
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

func isSerializationFailure(tx dbmetrics.TxExecutor, err error) bool {
	if pgerrors.IsSerializationFailure(err) {
		return true
	}
	tracker, ok := tx.(serializationTracker)
	return ok && tracker.SerializationFailed()
}
