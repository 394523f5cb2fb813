package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cashier/internal/core"
)

func TestReadEmptyWhenAbsent(t *testing.T) {
	s := New(t.TempDir())
	if got := s.ReadTransactions(); len(got) != 0 {
		t.Errorf("ReadTransactions() on empty store = %v, want empty", got)
	}
	if got := s.ReadBudgets(); len(got) != 0 {
		t.Errorf("ReadBudgets() on empty store = %v, want empty", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	txs := []core.Transaction{
		{ID: NewID(), Title: "Salary", Amount: 5000, Type: core.Inflow, Category: "Salary (বেতন)", Date: time.Now().UTC().Truncate(time.Second)},
	}
	if err := s.WriteTransactions(txs); err != nil {
		t.Fatalf("WriteTransactions() error = %v", err)
	}

	got := s.ReadTransactions()
	if len(got) != 1 {
		t.Fatalf("ReadTransactions() len = %d, want 1", len(got))
	}
	if got[0].ID != txs[0].ID || got[0].Title != "Salary" || got[0].Amount != 5000 || got[0].Type != core.Inflow {
		t.Errorf("round trip mismatch: %+v", got[0])
	}
	if !got[0].Date.Equal(txs[0].Date) {
		t.Errorf("date = %v, want %v", got[0].Date, txs[0].Date)
	}
}

func TestWriteReplacesWholeSlot(t *testing.T) {
	s := New(t.TempDir())
	if err := s.WriteBudgets([]core.Budget{{ID: "food", Category: "Food", Limit: 100}}); err != nil {
		t.Fatalf("WriteBudgets() error = %v", err)
	}
	if err := s.WriteBudgets([]core.Budget{{ID: "transport", Category: "Transport", Limit: 50}}); err != nil {
		t.Fatalf("WriteBudgets() error = %v", err)
	}

	got := s.ReadBudgets()
	if len(got) != 1 || got[0].ID != "transport" {
		t.Errorf("ReadBudgets() = %v, want single transport budget", got)
	}
}

func TestMalformedSlotReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt slot: %v", err)
	}

	s := New(dir)
	if got := s.ReadTransactions(); len(got) != 0 {
		t.Errorf("ReadTransactions() on corrupt slot = %v, want empty", got)
	}
}

func TestReadCategoriesOrSeed(t *testing.T) {
	s := New(t.TempDir())

	first := s.ReadCategoriesOrSeed()
	wantLen := len(core.DefaultIncomeCategories) + len(core.DefaultExpenseCategories)
	if len(first) != wantLen {
		t.Fatalf("seeded %d categories, want %d", len(first), wantLen)
	}
	seen := map[string]bool{}
	for _, c := range first {
		if c.ID == "" {
			t.Errorf("seeded category %q has no id", c.Name)
		}
		if seen[c.ID] {
			t.Errorf("duplicate seeded id %q", c.ID)
		}
		seen[c.ID] = true
	}

	// Second read must return the same set, not reseed.
	second := s.ReadCategoriesOrSeed()
	if len(second) != wantLen {
		t.Fatalf("second read returned %d categories, want %d", len(second), wantLen)
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Errorf("category %d id changed between reads: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSeedSkippedWhenNonDefaultCategoriesExist(t *testing.T) {
	s := New(t.TempDir())
	custom := []core.Category{{ID: "c1", Name: "Rent", Type: core.Outflow}}
	if err := s.WriteCategories(custom); err != nil {
		t.Fatalf("WriteCategories() error = %v", err)
	}

	got := s.ReadCategoriesOrSeed()
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("ReadCategoriesOrSeed() = %v, want the existing custom set untouched", got)
	}
}

func TestIndependentStoresDoNotShareState(t *testing.T) {
	a := New(t.TempDir())
	b := New(t.TempDir())

	if err := a.WriteTransactions([]core.Transaction{{ID: "only-in-a", Title: "x", Type: core.Outflow, Date: time.Now()}}); err != nil {
		t.Fatalf("WriteTransactions() error = %v", err)
	}
	if got := b.ReadTransactions(); len(got) != 0 {
		t.Errorf("store b sees %v, want empty", got)
	}
}
