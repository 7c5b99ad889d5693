package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/pkeller/capflow/internal/budget"
	"github.com/pkeller/capflow/internal/common"
	"github.com/pkeller/capflow/internal/config"
	"github.com/pkeller/capflow/internal/storage"
)

// initStorage opens the configured database with proper path expansion.
// The returned store is owned by the caller and must be closed.
func initStorage() (*storage.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("cannot open the budget database at %s", dbPath), err)
	}
	return store, nil
}

// initManager opens the store and loads the budget state. The caller
// must close the returned store when done with the manager.
func initManager(ctx context.Context) (*budget.Manager, *storage.Store, error) {
	store, err := initStorage()
	if err != nil {
		return nil, nil, err
	}

	manager := budget.NewManager(store)
	if err := manager.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return manager, store, nil
}

// parseAmount parses a positive monetary amount from a CLI argument.
func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", arg, err)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", amount)
	}
	return amount, nil
}
