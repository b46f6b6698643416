// Package tx provides transaction management abstractions.
// This package defines interfaces that decouple domain logic from the
// concrete store implementation.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT, ROLLBACK.
//
// Domain services depend on this interface, not concrete implementations.
// The actual implementation lives in infrastructure/storage/sqlite.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error or panics, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
