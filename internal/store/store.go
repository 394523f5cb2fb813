// Package store persists records for the local (guest) mode. Each record
// kind owns one JSON slot file in the data directory, mirroring a
// single-device key-value store. Malformed slots read as empty: the store
// favors availability over surfacing corruption.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"cashier/internal/core"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a store rooted at dir. The directory is created on first write.
// Independent instances over distinct directories do not share state.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// NewID returns a freshly generated record identifier.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) slotPath(kind core.Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// ReadTransactions returns the persisted transaction slot, empty if absent
// or unparsable.
func (s *Store) ReadTransactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readSlot[core.Transaction](s.slotPath(core.KindTransactions))
}

// WriteTransactions replaces the transaction slot.
func (s *Store) WriteTransactions(txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeSlot(core.KindTransactions, txs)
}

// ReadBudgets returns the persisted budget slot, empty if absent or unparsable.
func (s *Store) ReadBudgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readSlot[core.Budget](s.slotPath(core.KindBudgets))
}

// WriteBudgets replaces the budget slot.
func (s *Store) WriteBudgets(budgets []core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeSlot(core.KindBudgets, budgets)
}

// ReadCategories returns the persisted category slot without seeding.
func (s *Store) ReadCategories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readSlot[core.Category](s.slotPath(core.KindCategories))
}

// WriteCategories replaces the category slot.
func (s *Store) WriteCategories(cats []core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeSlot(core.KindCategories, cats)
}

// ReadCategoriesOrSeed returns the persisted categories, seeding the default
// set the first time the slot is observed empty. Once any categories exist
// this never reseeds, even when the set no longer matches the defaults.
func (s *Store) ReadCategoriesOrSeed() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := readSlot[core.Category](s.slotPath(core.KindCategories))
	if len(cats) > 0 {
		return cats
	}

	cats = core.DefaultCategories()
	for i := range cats {
		cats[i].ID = NewID()
	}
	if err := s.writeSlot(core.KindCategories, cats); err != nil {
		slog.Warn("Failed to persist seeded categories", "error", err)
	}
	return cats
}

// writeSlot replaces one slot file. The temp-file rename keeps a reader from
// ever observing a partially written slot. Callers hold s.mu.
func (s *Store) writeSlot(kind core.Kind, records any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s slot: %w", kind, err)
	}

	path := s.slotPath(kind)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s slot: %w", kind, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s slot: %w", kind, err)
	}
	return nil
}

func readSlot[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Debug("Treating malformed slot as empty", "path", path, "error", err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}
