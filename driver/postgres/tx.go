package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type txContextKey struct{}

// TxManager implements port.TxManager on pgx. The open transaction is
// carried in the context so repositories join it via querier.
type TxManager struct {
	db     DBTX
	logger *slog.Logger
}

func NewTxManager(db DBTX, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:     db,
		logger: logger.With("component", "tx_manager"),
	}
}

// WithTx runs fn inside a transaction. A context that already carries a
// transaction joins it instead of opening a nested one, so usecases can
// compose freely under one request- or job-scoped unit of work.
func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			m.logger.ErrorContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func txFrom(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx
}

// querier resolves the active statement executor: the ambient transaction
// when one is open, the pool otherwise.
func querier(ctx context.Context, db DBTX) DBTX {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db
}
