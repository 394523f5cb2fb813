package backend

import (
	"context"
	"time"

	"cashier/internal/core"
)

// RemoteStore is the outbound port for the multi-user remote backend. The
// Firestore adapter implements it; tests substitute fakes.
type RemoteStore interface {
	SubscribeTransactions(ctx context.Context, userID string, onUpdate func([]core.Transaction), onError func(error)) func()
	SubscribeBudgets(ctx context.Context, userID string, onUpdate func([]core.Budget), onError func(error)) func()
	SubscribeCategories(ctx context.Context, userID string, onUpdate func([]core.Category), onError func(error)) func()

	AddTransaction(ctx context.Context, userID, title string, amount float64, ft core.FlowType, category string, date time.Time) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	SaveBudget(ctx context.Context, userID, category string, limit float64) error
	DeleteBudget(ctx context.Context, userID, id string) error
	AddCategory(ctx context.Context, userID, name string, ft core.FlowType) error
	DeleteCategory(ctx context.Context, userID, id string) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the service instance and optional cleanup function
type Result struct {
	Service *Service
	Cleanup CleanupFunc
}
