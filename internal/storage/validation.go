package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkeller/capflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCap         = errors.New("invalid category cap")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction checks the fields the store requires before a write.
// Pending ids are allowed; the store assigns its own on insert.
func validateTransaction(tx *model.Transaction) error {
	if strings.TrimSpace(tx.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidTransaction)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if !model.ValidDate(tx.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidTransaction, tx.Date)
	}
	return nil
}

// validateCaps checks a full cap mapping before replacement.
func validateCaps(caps model.Caps) error {
	for name, info := range caps {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty category name", ErrInvalidCap)
		}
		if info.Cap < 0 {
			return fmt.Errorf("%w: %s has negative cap", ErrInvalidCap, name)
		}
	}
	return nil
}
