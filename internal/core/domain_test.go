package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Title: "Salary", Amount: 5000, Type: Inflow, Category: "Salary (বেতন)", Date: time.Now()}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "empty title", mutate: func(tx *Transaction) { tx.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = -1 }, wantErr: ErrNegativeAmount},
		{name: "zero amount allowed", mutate: func(tx *Transaction) { tx.Amount = 0 }},
		{name: "bad flow type", mutate: func(tx *Transaction) { tx.Type = "sideways" }, wantErr: ErrInvalidFlowType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr error
	}{
		{name: "valid", budget: Budget{Category: "Food (খাবার)", Limit: 500}},
		{name: "empty category", budget: Budget{Limit: 500}, wantErr: ErrEmptyCategory},
		{name: "zero limit", budget: Budget{Category: "Food (খাবার)"}, wantErr: ErrInvalidLimit},
		{name: "negative limit", budget: Budget{Category: "Food (খাবার)", Limit: -10}, wantErr: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.budget.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Food (খাবার)", "food-(খাবার)"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"already-slugged", "already-slugged"},
		{"MiXeD Case", "mixed-case"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	a := Slugify("Food (খাবার)")
	b := Slugify("Food (খাবার)")
	if a != b {
		t.Fatalf("Slugify not deterministic: %q vs %q", a, b)
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	want := len(DefaultIncomeCategories) + len(DefaultExpenseCategories)
	if len(cats) != want {
		t.Fatalf("DefaultCategories() len = %d, want %d", len(cats), want)
	}
	for i, name := range DefaultIncomeCategories {
		if cats[i].Name != name || cats[i].Type != Inflow {
			t.Errorf("income category %d = %+v, want name %q type %s", i, cats[i], name, Inflow)
		}
	}
	for i, name := range DefaultExpenseCategories {
		c := cats[len(DefaultIncomeCategories)+i]
		if c.Name != name || c.Type != Outflow {
			t.Errorf("expense category %d = %+v, want name %q type %s", i, c, name, Outflow)
		}
	}
	for _, c := range cats {
		if c.ID != "" {
			t.Errorf("seed category %q carries a preassigned id %q", c.Name, c.ID)
		}
	}
}
