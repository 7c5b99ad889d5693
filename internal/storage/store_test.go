package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkeller/capflow/internal/model"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// createLegacyStore builds a database at schema v1: caps without a type
// column, transactions without a type column, no expense_types table.
func createLegacyStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tx, err := store.db.Begin()
	require.NoError(t, err)
	require.NoError(t, migrations[0].Up(tx))
	_, err = tx.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	return store
}

func TestStore_MigrateLegacy(t *testing.T) {
	store := createLegacyStore(t)
	ctx := context.Background()

	// Seed legacy-shaped records: bare caps and untyped transactions.
	_, err := store.db.Exec(`INSERT INTO caps (category, cap) VALUES ('Food', 100), ('Rent', 500)`)
	require.NoError(t, err)
	_, err = store.db.Exec(
		`INSERT INTO transactions (category, amount, date) VALUES ('Food', 30, '2024-03-01'), ('Rent', 500, '2024-03-02')`)
	require.NoError(t, err)

	require.NoError(t, store.Migrate(ctx))

	caps, err := store.GetCaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Caps{
		"Food": {Cap: 100, Type: "Fixed"},
		"Rent": {Cap: 500, Type: "Fixed"},
	}, caps)

	txns, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	for _, tx := range txns {
		assert.Equal(t, "Fixed", tx.Type, "legacy transactions must be migrated to the default type")
	}

	types, err := store.GetExpenseTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultExpenseTypes, types)
}

func TestStore_MigrateIdempotent(t *testing.T) {
	store := createLegacyStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO caps (category, cap) VALUES ('Food', 100)`)
	require.NoError(t, err)

	require.NoError(t, store.Migrate(ctx))

	capsAfterFirst, err := store.GetCaps(ctx)
	require.NoError(t, err)
	txnsAfterFirst, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	typesAfterFirst, err := store.GetExpenseTypes(ctx)
	require.NoError(t, err)

	// A second run must not double-apply anything: no re-defaulted caps,
	// no duplicate seed types.
	require.NoError(t, store.Migrate(ctx))

	caps, err := store.GetCaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, capsAfterFirst, caps)

	txns, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, txnsAfterFirst, txns)

	types, err := store.GetExpenseTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, typesAfterFirst, types)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestStore_CapsRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	caps := model.Caps{
		"Food":    {Cap: 100, Type: "Variable"},
		"Rent":    {Cap: 500, Type: "Fixed"},
		"Savings": {Cap: 200, Type: "Priority/Investments"},
	}
	require.NoError(t, store.PutCaps(ctx, caps))

	got, err := store.GetCaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, caps, got)

	// PutCaps is a full replacement, not a merge.
	replacement := model.Caps{"Food": {Cap: 50, Type: "Variable"}}
	require.NoError(t, store.PutCaps(ctx, replacement))

	got, err = store.GetCaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestStore_PutCaps_Invalid(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	err := store.PutCaps(ctx, model.Caps{"Food": {Cap: -1, Type: "Fixed"}})
	require.ErrorIs(t, err, ErrInvalidCap)

	err = store.PutCaps(ctx, model.Caps{"  ": {Cap: 10, Type: "Fixed"}})
	require.ErrorIs(t, err, ErrInvalidCap)
}

func TestStore_AddTransaction_MonotonicIDs(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := store.AddTransaction(ctx, model.Transaction{
			Category: "Food",
			Amount:   float64(i + 1),
			Date:     "2024-03-01",
			Type:     "Fixed",
		})
		require.NoError(t, err)
		assert.Greater(t, id, last, "ids must increase monotonically")
		last = id
	}
}

func TestStore_AddTransaction_IgnoresPendingID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	id, err := store.AddTransaction(ctx, model.Transaction{
		ID:       -123456789,
		Category: "Food",
		Amount:   10,
		Date:     "2024-03-01",
		Type:     "Fixed",
	})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestStore_AddTransaction_Invalid(t *testing.T) {
	tests := []struct {
		name string
		tx   model.Transaction
	}{
		{name: "missing category", tx: model.Transaction{Amount: 10, Date: "2024-03-01", Type: "Fixed"}},
		{name: "zero amount", tx: model.Transaction{Category: "Food", Date: "2024-03-01", Type: "Fixed"}},
		{name: "negative amount", tx: model.Transaction{Category: "Food", Amount: -5, Date: "2024-03-01", Type: "Fixed"}},
		{name: "bad date", tx: model.Transaction{Category: "Food", Amount: 5, Date: "03/01/2024", Type: "Fixed"}},
	}

	store := createTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddTransaction(context.Background(), tt.tx)
			require.ErrorIs(t, err, ErrInvalidTransaction)
		})
	}
}

func TestStore_PutTransaction(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	id, err := store.AddTransaction(ctx, model.Transaction{
		Category: "Food", Amount: 10, Date: "2024-03-01", Type: "Fixed",
	})
	require.NoError(t, err)

	updated := model.Transaction{
		ID: id, Category: "Dining", Amount: 12, Note: "lunch", Date: "2024-03-01", Type: "Variable",
	}
	require.NoError(t, store.PutTransaction(ctx, updated))

	txns, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, updated, txns[0])
}

func TestStore_PutTransaction_NotFound(t *testing.T) {
	store := createTestStore(t)

	err := store.PutTransaction(context.Background(), model.Transaction{
		ID: 999, Category: "Food", Amount: 10, Date: "2024-03-01", Type: "Fixed",
	})
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestStore_ClearTransactions(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.AddTransaction(ctx, model.Transaction{
			Category: "Food", Amount: float64(i + 1), Date: "2024-03-01", Type: "Fixed",
		})
		require.NoError(t, err)
	}

	require.NoError(t, store.ClearTransactions(ctx))

	txns, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)

	// Ids keep increasing after a clear; AUTOINCREMENT never reuses them.
	id, err := store.AddTransaction(ctx, model.Transaction{
		Category: "Food", Amount: 1, Date: "2024-03-02", Type: "Fixed",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(3))
}

func TestStore_ExpenseTypesOrderPreserved(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	types, err := store.GetExpenseTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultExpenseTypes, types)

	reordered := []string{"Variable", "Fun", "Fixed"}
	require.NoError(t, store.PutExpenseTypes(ctx, reordered))

	types, err = store.GetExpenseTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, reordered, types)
}

func TestStore_NoteRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	id, err := store.AddTransaction(ctx, model.Transaction{
		Category: "Food", Amount: 10, Date: "2024-03-01", Type: "Fixed",
	})
	require.NoError(t, err)

	txns, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].Note, "absent note must read back empty")
	assert.Equal(t, id, txns[0].ID)
}

func TestNewStore_EmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	require.Error(t, err)
}
