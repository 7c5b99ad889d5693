// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/pkeller/capflow/internal/model"
)

// Storage defines the contract for the persistence layer. Collections are
// named caps, transactions, and expense types; all operations may fail
// with a wrapped IO error, and opening the store may fail with
// storage.ErrStorageUnavailable.
type Storage interface {
	// Cap operations. PutCaps is a full replacement, not a delta.
	GetCaps(ctx context.Context) (model.Caps, error)
	PutCaps(ctx context.Context, caps model.Caps) error

	// Transaction operations. AddTransaction returns the store-assigned
	// id; PutTransaction overwrites by id. There is no single-transaction
	// delete, only full collection clearing.
	AddTransaction(ctx context.Context, tx model.Transaction) (int64, error)
	PutTransaction(ctx context.Context, tx model.Transaction) error
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	ClearTransactions(ctx context.Context) error

	// Expense-type operations. The list is ordered.
	GetExpenseTypes(ctx context.Context) ([]string, error)
	PutExpenseTypes(ctx context.Context, types []string) error

	// Database management. Migrate is idempotent and is the only
	// schema-creation point.
	Migrate(ctx context.Context) error
	Close() error
}
