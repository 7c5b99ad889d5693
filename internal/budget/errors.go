// Package budget implements the budget state manager: it owns the
// in-memory copies of the caps, transactions, and expense-type
// collections, is the sole writer to the local store, and exposes the
// mutation operations the presentation layer calls.
package budget

import "errors"

var (
	// ErrMissingID indicates an update was requested for a transaction
	// that has no store-assigned id.
	ErrMissingID = errors.New("transaction has no assigned id")

	// ErrTypeInUse indicates an expense type cannot be deleted because a
	// category cap still references it.
	ErrTypeInUse = errors.New("expense type is in use by a category")

	// ErrNotLoaded indicates a mutation was attempted before Load
	// completed successfully.
	ErrNotLoaded = errors.New("budget state not loaded")
)
