package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pkeller/capflow/internal/common"
	"github.com/pkeller/capflow/internal/model"
)

// ErrTransactionNotFound indicates an overwrite targeted an id with no row.
var ErrTransactionNotFound = fmt.Errorf("transaction %w", common.ErrNotFound)

// AddTransaction inserts a new transaction and returns the store-assigned
// id. Any pending id on the record is ignored; ids are assigned by the
// store and increase monotonically.
func (s *Store) AddTransaction(ctx context.Context, tx model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateTransaction(&tx); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (category, amount, note, date, type) VALUES (?, ?, ?, ?, ?)`,
		tx.Category, tx.Amount, nullable(tx.Note), tx.Date, tx.Type)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get assigned transaction id: %w", err)
	}

	slog.Debug("added transaction", "id", id, "category", tx.Category, "amount", tx.Amount)
	return id, nil
}

// PutTransaction overwrites an existing transaction by id.
func (s *Store) PutTransaction(ctx context.Context, tx model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if tx.ID <= 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidTransaction)
	}
	if err := validateTransaction(&tx); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, amount = ?, note = ?, date = ?, type = ? WHERE id = ?`,
		tx.Category, tx.Amount, nullable(tx.Note), tx.Date, tx.Type, tx.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", tx.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrTransactionNotFound, tx.ID)
	}

	return nil
}

// GetTransactions returns all transactions ordered by id.
func (s *Store) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount, note, date, type FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	var txns []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var note sql.NullString
		if err := rows.Scan(&tx.ID, &tx.Category, &tx.Amount, &note, &tx.Date, &tx.Type); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Note = note.String
		txns = append(txns, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(txns))
	return txns, nil
}

// ClearTransactions removes every transaction. There is intentionally no
// single-transaction delete; only full collection clearing is exposed.
func (s *Store) ClearTransactions(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	slog.Info("cleared all transactions")
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
