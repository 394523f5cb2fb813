package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Inflow  FlowType = "inflow"
	Outflow FlowType = "outflow"
)

const (
	KindTransactions Kind = "transactions"
	KindBudgets      Kind = "budgets"
	KindCategories   Kind = "categories"
)

type (
	// FlowType is the direction of money movement. Exactly two variants exist.
	FlowType string

	// Kind identifies one of the three record collections.
	Kind string

	Transaction struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		Amount   float64   `json:"amount"`
		Type     FlowType  `json:"type"`
		Category string    `json:"category"`
		Date     time.Time `json:"date"`
	}

	Budget struct {
		ID       string  `json:"id"`
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
	}

	Category struct {
		ID   string   `json:"id"`
		Name string   `json:"name"`
		Type FlowType `json:"type"`
	}
)

// FallbackCategory is assigned to transactions persisted without one.
const FallbackCategory = "Other (অন্যান্য)"

// Default category names seeded for a newly observed, empty category
// collection. The bilingual labels come straight from the product.
var (
	DefaultIncomeCategories = []string{
		"Salary (বেতন)",
		"Business (ব্যবসা)",
		"Gift (উপহার)",
		"Other (অন্যান্য)",
	}

	DefaultExpenseCategories = []string{
		"Food (খাবার)",
		"Transport (যাতায়াত)",
		"Utilities (বিল)",
		"Health (স্বাস্থ্য)",
		"Education (শিক্ষা)",
		"Shopping (কেনাকাটা)",
		"Entertainment (বিনোদন)",
		"Other (অন্যান্য)",
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrInvalidFlowType = errors.New("invalid flow type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidLimit    = errors.New("budget limit must be positive")
	ErrEmptyName       = errors.New("empty name")
)

func (ft FlowType) IsValid() bool {
	switch ft {
	case Inflow, Outflow:
		return true
	default:
		return false
	}
}

func (k Kind) IsValid() bool {
	switch k {
	case KindTransactions, KindBudgets, KindCategories:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidFlowType
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !c.Type.IsValid() {
		return ErrInvalidFlowType
	}
	return nil
}

// Slugify derives the storage identifier for a budget from its category name:
// runs of whitespace become single hyphens and the result is lowercased.
// Both backends use the same scheme so repeated saves for one category
// overwrite instead of duplicating.
func Slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// DefaultCategories returns the full seed set, income first, without IDs.
// Callers assign identifiers according to their backend.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))
	for _, name := range DefaultIncomeCategories {
		out = append(out, Category{Name: name, Type: Inflow})
	}
	for _, name := range DefaultExpenseCategories {
		out = append(out, Category{Name: name, Type: Outflow})
	}
	return out
}
