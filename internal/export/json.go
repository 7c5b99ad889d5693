// Package export serializes the budget collections to their canonical
// JSON backup shapes: a caps object keyed by category and a transaction
// array.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkeller/capflow/internal/model"
)

// File names used by WriteDir.
const (
	CapsFileName         = "budget_caps.json"
	TransactionsFileName = "transactions.json"
)

// WriteCaps writes the cap mapping as indented JSON.
func WriteCaps(w io.Writer, caps model.Caps) error {
	return writeJSON(w, caps)
}

// WriteTransactions writes the transaction list as indented JSON. A nil
// list serializes as an empty array, not null.
func WriteTransactions(w io.Writer, transactions []model.Transaction) error {
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return writeJSON(w, transactions)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteDir writes both collections as JSON files into dir, creating it
// if needed.
func WriteDir(dir string, caps model.Caps, transactions []model.Transaction) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := writeFile(filepath.Join(dir, CapsFileName), func(w io.Writer) error {
		return WriteCaps(w, caps)
	}); err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, TransactionsFileName), func(w io.Writer) error {
		return WriteTransactions(w, transactions)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
