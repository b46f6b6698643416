package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tillbook/internal/core/tx"
	"tillbook/pkg/logger"
)

var tracer = otel.Tracer("tillbook/tx")

// Compile-time check that TxManager implements tx.Manager interface.
var _ tx.Manager = (*TxManager)(nil)

// TxManager manages database transactions on the single shared connection.
// The store lock is taken for the whole transaction, so at most one ledger or
// reporting operation runs against the store at a time. Rollback is guaranteed
// on every exit path, including panics.
type TxManager struct {
	db *DB
}

// NewTxManager creates a new transaction manager.
func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// txKey is the context key for active transaction.
type txKey struct{}

// Querier is the subset of database/sql operations repositories need.
// Both *sql.DB and *sql.Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunInTransaction executes fn within a transaction.
// If a transaction already exists in ctx, it is reused (nested call).
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	if m.GetTx(ctx) != nil {
		return fn(ctx)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	sqlTx, err := m.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, sqlTx)

	// Rollback must fire on every exit path, including panics in fn.
	committed := false
	defer func() {
		if !committed {
			if rbErr := sqlTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logger.Error(ctx, "rollback failed", "error", rbErr)
			}
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	return nil
}

// GetTx returns the current transaction from context, or nil if none.
func (m *TxManager) GetTx(ctx context.Context) *sql.Tx {
	if sqlTx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return sqlTx
	}
	return nil
}

// GetQuerier returns the transaction if one is in context, otherwise the
// shared handle. This lets repositories work both inside and outside
// transactions.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if sqlTx := m.GetTx(ctx); sqlTx != nil {
		return sqlTx
	}
	return m.db.SQL
}
