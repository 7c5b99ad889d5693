package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkeller/capflow/internal/model"
)

// GetCaps returns the full category-cap mapping.
func (s *Store) GetCaps(ctx context.Context) (model.Caps, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT category, cap, type FROM caps ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query caps: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	caps := make(model.Caps)
	for rows.Next() {
		var name string
		var info model.CapInfo
		if err := rows.Scan(&name, &info.Cap, &info.Type); err != nil {
			return nil, fmt.Errorf("failed to scan cap: %w", err)
		}
		caps[name] = info
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating caps: %w", err)
	}

	slog.Debug("retrieved caps", "count", len(caps))
	return caps, nil
}

// PutCaps replaces the entire cap mapping atomically. Callers supply the
// complete desired mapping, not a delta.
func (s *Store) PutCaps(ctx context.Context, caps model.Caps) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCaps(caps); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM caps`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear caps: %w", err)
	}

	for name, info := range caps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO caps (category, cap, type) VALUES (?, ?, ?)`,
			name, info.Cap, info.Type); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert cap %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit caps: %w", err)
	}

	slog.Debug("replaced caps", "count", len(caps))
	return nil
}
