package remote

import (
	"testing"
	"time"

	"cashier/internal/core"
)

func TestDocToTransactionNativeTimestamp(t *testing.T) {
	stamp := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	tx := docToTransaction("doc1", map[string]interface{}{
		"title":    "Groceries",
		"amount":   float64(350),
		"type":     "outflow",
		"category": "Food (খাবার)",
		"date":     stamp,
	})

	if tx.ID != "doc1" || tx.Title != "Groceries" || tx.Amount != 350 {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if tx.Type != core.Outflow {
		t.Errorf("type = %q, want %q", tx.Type, core.Outflow)
	}
	if !tx.Date.Equal(stamp) {
		t.Errorf("date = %v, want %v", tx.Date, stamp)
	}
}

func TestDocToTransactionStringDate(t *testing.T) {
	tx := docToTransaction("doc2", map[string]interface{}{
		"title":  "Salary",
		"amount": int64(5000),
		"type":   "inflow",
		"date":   "2025-03-01T08:00:00Z",
	})

	want := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	if !tx.Date.Equal(want) {
		t.Errorf("date = %v, want %v", tx.Date, want)
	}
	if tx.Amount != 5000 {
		t.Errorf("amount = %v, want 5000 (int64 coerced)", tx.Amount)
	}
}

func TestDocToTransactionMissingFields(t *testing.T) {
	before := time.Now()
	tx := docToTransaction("doc3", map[string]interface{}{
		"title": "Mystery",
		"type":  "outflow",
	})
	after := time.Now()

	if tx.Category != core.FallbackCategory {
		t.Errorf("category = %q, want fallback %q", tx.Category, core.FallbackCategory)
	}
	if tx.Date.Before(before) || tx.Date.After(after) {
		t.Errorf("missing date should normalize to now, got %v", tx.Date)
	}
	if tx.Amount != 0 {
		t.Errorf("amount = %v, want 0", tx.Amount)
	}
}

func TestDocToTransactionUnparsableDate(t *testing.T) {
	tx := docToTransaction("doc4", map[string]interface{}{
		"title": "x",
		"type":  "outflow",
		"date":  "yesterday-ish",
	})
	if tx.Date.IsZero() {
		t.Error("unparsable date must fall back to a usable time, got zero")
	}
}

func TestDocToBudget(t *testing.T) {
	b := docToBudget("food-(খাবার)", map[string]interface{}{
		"category": "Food (খাবার)",
		"limit":    int64(500),
	})
	if b.ID != "food-(খাবার)" || b.Category != "Food (খাবার)" || b.Limit != 500 {
		t.Errorf("unexpected budget: %+v", b)
	}
}

func TestDocToCategory(t *testing.T) {
	c := docToCategory("c9", map[string]interface{}{
		"name": "Gift (উপহার)",
		"type": "inflow",
	})
	if c.ID != "c9" || c.Name != "Gift (উপহার)" || c.Type != core.Inflow {
		t.Errorf("unexpected category: %+v", c)
	}
}
