package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkeller/capflow/internal/model"
	"github.com/pkeller/capflow/internal/service"
)

// Manager owns the in-memory budget state and keeps it consistent with
// the injected store. All mutations serialize through one mutex, so two
// overlapping multi-collection mutations cannot silently overwrite each
// other's writes. Optimistic adds release the mutex while the store call
// is in flight; reconciliation is keyed by the placeholder's temporary id
// so interleaved adds cannot corrupt each other.
type Manager struct {
	store    service.Storage
	onChange func()

	mu           sync.Mutex
	caps         model.Caps
	transactions []model.Transaction
	types        []string
	loading      bool
	loaded       bool
	loadErr      error
	notice       string

	tempSeq atomic.Int64
}

// NewManager creates a manager bound to store. The store handle is owned
// by the caller and must outlive the manager.
func NewManager(store service.Storage) *Manager {
	return &Manager{store: store}
}

// SetOnChange registers a hook invoked after every state change, for
// presentation layers that re-render on mutation. Must be set before Load.
func (m *Manager) SetOnChange(fn func()) {
	m.onChange = fn
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

// Load migrates the store if needed and reads all three collections into
// memory. On failure the load error is recorded and the loading flag is
// cleared; Load may be called again to retry.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.loadErr = nil
	m.mu.Unlock()
	m.notify()

	err := m.load(ctx)

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.loadErr = fmt.Errorf("failed to load budget data: %w", err)
		slog.Error("budget load failed", "error", err)
	} else {
		m.loaded = true
	}
	m.mu.Unlock()
	m.notify()

	return err
}

func (m *Manager) load(ctx context.Context) error {
	// Migration is versioned and idempotent; running it on an
	// already-current store is a no-op.
	if err := m.store.Migrate(ctx); err != nil {
		return err
	}

	caps, err := m.store.GetCaps(ctx)
	if err != nil {
		return err
	}
	txns, err := m.store.GetTransactions(ctx)
	if err != nil {
		return err
	}
	types, err := m.store.GetExpenseTypes(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.caps = caps
	m.transactions = txns
	m.types = types
	m.mu.Unlock()

	slog.Info("budget data loaded",
		"categories", len(caps),
		"transactions", len(txns),
		"expense_types", len(types))
	return nil
}

// Loading reports whether a Load is in progress.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the last load failure, if any. A non-nil value blocks the
// session view until a retry succeeds.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Notice returns the last non-blocking mutation failure message, cleared
// by the next successful mutation.
func (m *Manager) Notice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice
}

// Caps returns a copy of the current cap mapping.
func (m *Manager) Caps() model.Caps {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caps.Clone()
}

// Transactions returns a copy of the current transaction list, including
// any pending placeholders.
func (m *Manager) Transactions() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// ExpenseTypes returns a copy of the ordered expense-type list.
func (m *Manager) ExpenseTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.types))
	copy(out, m.types)
	return out
}

// Remaining returns the derived remaining-budget mapping for the current
// state. Transactions whose category has no cap are excluded.
func (m *Manager) Remaining() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Remaining(m.caps, m.transactions)
}

func (m *Manager) requireLoaded() error {
	if !m.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (m *Manager) setNotice(format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	slog.Error(m.notice)
}

// nextTempID returns a unique negative placeholder id. The nanosecond
// clock reading is salted with a per-manager sequence so two adds in the
// same instant still get distinct ids.
func (m *Manager) nextTempID() int64 {
	return -(time.Now().UnixNano() + m.tempSeq.Add(1))
}

// AddTransaction optimistically appends tx and persists it. The returned
// transaction carries the store-assigned id. On persist failure the
// placeholder is removed, leaving state consistent with the store.
func (m *Manager) AddTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	m.mu.Lock()
	if err := m.requireLoaded(); err != nil {
		m.mu.Unlock()
		return model.Transaction{}, err
	}
	if tx.Date == "" {
		tx.Date = model.Today()
	}
	if tx.Type == "" {
		// Denormalized copy of the owning category's type at entry time.
		tx.Type = m.caps[tx.Category].Type
	}

	pending := tx
	pending.ID = m.nextTempID()
	m.transactions = append(m.transactions, pending)
	m.mu.Unlock()
	m.notify()

	tx.ID = 0
	id, err := m.store.AddTransaction(ctx, tx)

	m.mu.Lock()
	if err != nil {
		m.removePlaceholder(pending.ID)
		m.setNotice("failed to save transaction: %v", err)
		m.mu.Unlock()
		m.notify()
		return model.Transaction{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	committed := tx
	committed.ID = id
	m.replacePlaceholder(pending.ID, committed)
	m.notice = ""
	m.mu.Unlock()
	m.notify()

	return committed, nil
}

// removePlaceholder drops the pending entry with the given temporary id.
// Callers must hold m.mu.
func (m *Manager) removePlaceholder(tempID int64) {
	for i, tx := range m.transactions {
		if tx.ID == tempID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return
		}
	}
}

// replacePlaceholder swaps the pending entry for its committed form. If
// the placeholder was cleared while the store call was in flight there is
// nothing to reconcile. Callers must hold m.mu.
func (m *Manager) replacePlaceholder(tempID int64, committed model.Transaction) {
	for i, tx := range m.transactions {
		if tx.ID == tempID {
			m.transactions[i] = committed
			return
		}
	}
}

// UpdateTransaction overwrites a committed transaction by id. A record
// without a store-assigned id cannot be updated.
func (m *Manager) UpdateTransaction(ctx context.Context, tx model.Transaction) error {
	if tx.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrMissingID, tx.ID)
	}

	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	if err := m.store.PutTransaction(ctx, tx); err != nil {
		m.setNotice("failed to update transaction %d: %v", tx.ID, err)
		return fmt.Errorf("failed to update transaction %d: %w", tx.ID, err)
	}

	for i, existing := range m.transactions {
		if existing.ID == tx.ID {
			m.transactions[i] = tx
			break
		}
	}
	m.notice = ""
	return nil
}

// ClearTransactions removes every transaction from the store and memory.
func (m *Manager) ClearTransactions(ctx context.Context) error {
	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	if err := m.store.ClearTransactions(ctx); err != nil {
		m.setNotice("failed to clear transactions: %v", err)
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	m.transactions = nil
	m.notice = ""
	return nil
}

// UpdateCaps replaces the entire cap mapping. Callers supply the complete
// desired mapping, not a delta.
func (m *Manager) UpdateCaps(ctx context.Context, caps model.Caps) error {
	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	caps = caps.Clone()
	if err := m.store.PutCaps(ctx, caps); err != nil {
		m.setNotice("failed to save caps: %v", err)
		return fmt.Errorf("failed to save caps: %w", err)
	}

	m.caps = caps
	m.notice = ""
	return nil
}

// UpdateCategory renames oldName to newName with the given cap and type,
// rewriting every transaction that referenced the old name. Transaction
// types are forcibly synced to the category's new type, discarding any
// per-transaction drift. When oldName equals newName this degrades to an
// in-place update.
//
// The cascade is not transactional across collections: if a transaction
// rewrite fails partway, the cap change and earlier rewrites stay applied.
func (m *Manager) UpdateCategory(ctx context.Context, oldName, newName string, newCap float64, newType string) error {
	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	caps := m.caps.Clone()
	delete(caps, oldName)
	caps[newName] = model.CapInfo{Cap: newCap, Type: newType}

	if err := m.store.PutCaps(ctx, caps); err != nil {
		m.setNotice("failed to save caps: %v", err)
		return fmt.Errorf("failed to save caps: %w", err)
	}
	m.caps = caps

	for i, tx := range m.transactions {
		if tx.Category != oldName {
			continue
		}
		updated := tx
		updated.Category = newName
		updated.Type = newType
		if updated.Committed() {
			if err := m.store.PutTransaction(ctx, updated); err != nil {
				m.setNotice("failed to rewrite transaction %d: %v", tx.ID, err)
				return fmt.Errorf("failed to rewrite transaction %d: %w", tx.ID, err)
			}
		}
		m.transactions[i] = updated
	}

	m.notice = ""
	slog.Info("updated category", "old", oldName, "new", newName, "cap", newCap, "type", newType)
	return nil
}

// DeleteCategory removes the cap entry only. Transactions referencing the
// deleted category are kept as-is; they no longer resolve to a cap and
// drop out of the remaining computation.
func (m *Manager) DeleteCategory(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	caps := m.caps.Clone()
	delete(caps, name)

	if err := m.store.PutCaps(ctx, caps); err != nil {
		m.setNotice("failed to save caps: %v", err)
		return fmt.Errorf("failed to save caps: %w", err)
	}

	m.caps = caps
	m.notice = ""
	return nil
}

// AddExpenseType appends a new expense type. Blank or duplicate names are
// a no-op.
func (m *Manager) AddExpenseType(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}
	if name == "" || m.hasType(name) {
		return nil
	}

	types := append(append([]string(nil), m.types...), name)
	if err := m.store.PutExpenseTypes(ctx, types); err != nil {
		m.setNotice("failed to save expense types: %v", err)
		return fmt.Errorf("failed to save expense types: %w", err)
	}

	m.types = types
	m.notice = ""
	return nil
}

// UpdateExpenseType renames an expense type everywhere it appears: the
// type list, every cap referencing it, and every transaction referencing
// it. A blank or already-taken new name is a no-op.
func (m *Manager) UpdateExpenseType(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)

	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}
	if newName == "" || m.hasType(newName) || !m.hasType(oldName) {
		return nil
	}

	types := make([]string, len(m.types))
	for i, t := range m.types {
		if t == oldName {
			t = newName
		}
		types[i] = t
	}
	if err := m.store.PutExpenseTypes(ctx, types); err != nil {
		m.setNotice("failed to save expense types: %v", err)
		return fmt.Errorf("failed to save expense types: %w", err)
	}
	m.types = types

	capsChanged := false
	caps := m.caps.Clone()
	for name, info := range caps {
		if info.Type == oldName {
			info.Type = newName
			caps[name] = info
			capsChanged = true
		}
	}
	if capsChanged {
		if err := m.store.PutCaps(ctx, caps); err != nil {
			m.setNotice("failed to save caps: %v", err)
			return fmt.Errorf("failed to save caps: %w", err)
		}
		m.caps = caps
	}

	for i, tx := range m.transactions {
		if tx.Type != oldName {
			continue
		}
		updated := tx
		updated.Type = newName
		if updated.Committed() {
			if err := m.store.PutTransaction(ctx, updated); err != nil {
				m.setNotice("failed to rewrite transaction %d: %v", tx.ID, err)
				return fmt.Errorf("failed to rewrite transaction %d: %w", tx.ID, err)
			}
		}
		m.transactions[i] = updated
	}

	m.notice = ""
	slog.Info("renamed expense type", "old", oldName, "new", newName)
	return nil
}

// DeleteExpenseType removes an expense type from the list. Deletion is
// refused while any cap references the type; transactions keep their
// denormalized type label either way.
func (m *Manager) DeleteExpenseType(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.notify()
	defer m.mu.Unlock()
	if err := m.requireLoaded(); err != nil {
		return err
	}

	for category, info := range m.caps {
		if info.Type == name {
			return fmt.Errorf("%w: %q is used by category %q", ErrTypeInUse, name, category)
		}
	}

	types := make([]string, 0, len(m.types))
	for _, t := range m.types {
		if t != name {
			types = append(types, t)
		}
	}
	if len(types) == len(m.types) {
		return nil
	}

	if err := m.store.PutExpenseTypes(ctx, types); err != nil {
		m.setNotice("failed to save expense types: %v", err)
		return fmt.Errorf("failed to save expense types: %w", err)
	}

	m.types = types
	m.notice = ""
	return nil
}

// hasType reports whether name is in the type list. Callers must hold m.mu.
func (m *Manager) hasType(name string) bool {
	for _, t := range m.types {
		if t == name {
			return true
		}
	}
	return false
}
