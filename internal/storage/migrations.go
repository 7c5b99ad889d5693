package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pkeller/capflow/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			// Matches the legacy record shapes: bare caps without an
			// expense type, transactions without a type column.
			queries := []string{
				`CREATE TABLE IF NOT EXISTS caps (
					category TEXT PRIMARY KEY,
					cap REAL NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					category TEXT NOT NULL,
					amount REAL NOT NULL,
					note TEXT,
					date TEXT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add expense types and type columns",
		Up: func(tx *sql.Tx) error {
			// Legacy rows predate expense types; they are migrated to the
			// default type rather than left untyped.
			queries := []string{
				fmt.Sprintf(`ALTER TABLE caps ADD COLUMN type TEXT NOT NULL DEFAULT '%s'`, model.DefaultExpenseType),
				fmt.Sprintf(`ALTER TABLE transactions ADD COLUMN type TEXT NOT NULL DEFAULT '%s'`, model.DefaultExpenseType),

				`CREATE TABLE IF NOT EXISTS expense_types (
					position INTEGER NOT NULL,
					name TEXT PRIMARY KEY
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}

			// Seed the default expense types on first run only.
			var count int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM expense_types`).Scan(&count); err != nil {
				return fmt.Errorf("failed to count expense types: %w", err)
			}
			if count == 0 {
				for i, name := range model.DefaultExpenseTypes {
					if _, err := tx.Exec(`INSERT INTO expense_types (position, name) VALUES (?, ?)`, i, name); err != nil {
						return fmt.Errorf("failed to seed expense type %q: %w", name, err)
					}
				}
				slog.Info("Seeded default expense types", "count", len(model.DefaultExpenseTypes))
			}

			return nil
		},
	},
}

// Migrate applies all pending database migrations. It is idempotent: a
// store already at the expected version is left untouched.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the current PRAGMA user_version of the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
