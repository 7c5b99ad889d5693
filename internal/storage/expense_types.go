package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// GetExpenseTypes returns the ordered expense-type list.
func (s *Store) GetExpenseTypes(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM expense_types ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense types: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	var types []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan expense type: %w", err)
		}
		types = append(types, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense types: %w", err)
	}

	return types, nil
}

// PutExpenseTypes replaces the ordered expense-type list atomically.
func (s *Store) PutExpenseTypes(ctx context.Context, types []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_types`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear expense types: %w", err)
	}

	for i, name := range types {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_types (position, name) VALUES (?, ?)`, i, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert expense type %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense types: %w", err)
	}

	slog.Debug("replaced expense types", "count", len(types))
	return nil
}
