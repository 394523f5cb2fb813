package backend

import (
	"context"
	"fmt"
	"time"

	"cashier/internal/bus"
	"cashier/internal/core"
	"cashier/internal/store"
)

// Service is the single entry point the UI depends on. Every operation takes
// the caller's identity: a non-empty userID routes to the remote store when
// one is configured, anything else falls back to the local store and change
// bus. Callers never branch on which backend served them.
type Service struct {
	remote RemoteStore // nil when no remote store is configured
	store  *store.Store
	bus    *bus.Bus
}

// NewService builds a facade over the given local store and optional remote
// store. A nil remote leaves the facade fully functional in local-only mode.
func NewService(rs RemoteStore, st *store.Store) *Service {
	return &Service{
		remote: rs,
		store:  st,
		bus:    bus.New(st),
	}
}

func (s *Service) useRemote(userID string) bool {
	return s.remote != nil && userID != ""
}

// SubscribeTransactions delivers the current transaction snapshot and every
// subsequent one for this identity. The returned unsubscribe is idempotent
// and safe to call before the first delivery; after it runs the callback
// never fires again.
func (s *Service) SubscribeTransactions(ctx context.Context, userID string, onUpdate func([]core.Transaction), onError func(error)) func() {
	if s.useRemote(userID) {
		return s.remote.SubscribeTransactions(ctx, userID, onUpdate, onError)
	}
	return s.bus.SubscribeTransactions(onUpdate)
}

// SubscribeBudgets delivers budget snapshots for this identity.
func (s *Service) SubscribeBudgets(ctx context.Context, userID string, onUpdate func([]core.Budget), onError func(error)) func() {
	if s.useRemote(userID) {
		return s.remote.SubscribeBudgets(ctx, userID, onUpdate, onError)
	}
	return s.bus.SubscribeBudgets(onUpdate)
}

// SubscribeCategories delivers category snapshots for this identity, seeding
// the default set the first time an empty collection is observed.
func (s *Service) SubscribeCategories(ctx context.Context, userID string, onUpdate func([]core.Category), onError func(error)) func() {
	if s.useRemote(userID) {
		return s.remote.SubscribeCategories(ctx, userID, onUpdate, onError)
	}
	return s.bus.SubscribeCategories(onUpdate)
}

// AddTransaction records a new transaction dated now. When the call returns
// without error, the next delivery to every subscriber reflects it.
func (s *Service) AddTransaction(ctx context.Context, userID, title string, amount float64, ft core.FlowType, category string) error {
	tx := core.Transaction{
		Title:    title,
		Amount:   amount,
		Type:     ft,
		Category: category,
		Date:     time.Now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	if s.useRemote(userID) {
		return s.remote.AddTransaction(ctx, userID, title, amount, ft, category, tx.Date)
	}

	tx.ID = store.NewID()
	current := s.store.ReadTransactions()
	if err := s.store.WriteTransactions(append([]core.Transaction{tx}, current...)); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	s.bus.PublishTransactions()
	return nil
}

// DeleteTransaction removes a transaction by identifier. Deleting an unknown
// identifier succeeds.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	if s.useRemote(userID) {
		return s.remote.DeleteTransaction(ctx, userID, id)
	}

	current := s.store.ReadTransactions()
	kept := make([]core.Transaction, 0, len(current))
	for _, tx := range current {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if err := s.store.WriteTransactions(kept); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	s.bus.PublishTransactions()
	return nil
}

// SaveBudget upserts the budget for category. The identifier derives from
// the slugified category name, so a second save for the same category
// replaces the limit instead of creating a duplicate.
func (s *Service) SaveBudget(ctx context.Context, userID, category string, limit float64) error {
	budget := core.Budget{ID: core.Slugify(category), Category: category, Limit: limit}
	if err := budget.Validate(); err != nil {
		return err
	}

	if s.useRemote(userID) {
		return s.remote.SaveBudget(ctx, userID, category, limit)
	}

	budgets := s.store.ReadBudgets()
	replaced := false
	for i := range budgets {
		if budgets[i].ID == budget.ID {
			budgets[i].Limit = limit
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, budget)
	}
	if err := s.store.WriteBudgets(budgets); err != nil {
		return fmt.Errorf("write budgets: %w", err)
	}
	s.bus.PublishBudgets()
	return nil
}

// DeleteBudget removes a budget by identifier.
func (s *Service) DeleteBudget(ctx context.Context, userID, id string) error {
	if s.useRemote(userID) {
		return s.remote.DeleteBudget(ctx, userID, id)
	}

	current := s.store.ReadBudgets()
	kept := make([]core.Budget, 0, len(current))
	for _, b := range current {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if err := s.store.WriteBudgets(kept); err != nil {
		return fmt.Errorf("write budgets: %w", err)
	}
	s.bus.PublishBudgets()
	return nil
}

// AddCategory records a new category.
func (s *Service) AddCategory(ctx context.Context, userID, name string, ft core.FlowType) error {
	cat := core.Category{Name: name, Type: ft}
	if err := cat.Validate(); err != nil {
		return err
	}

	if s.useRemote(userID) {
		return s.remote.AddCategory(ctx, userID, name, ft)
	}

	cat.ID = store.NewID()
	cats := s.store.ReadCategoriesOrSeed()
	if err := s.store.WriteCategories(append(cats, cat)); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	s.bus.PublishCategories()
	return nil
}

// DeleteCategory removes a category by identifier.
func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	if s.useRemote(userID) {
		return s.remote.DeleteCategory(ctx, userID, id)
	}

	current := s.store.ReadCategories()
	kept := make([]core.Category, 0, len(current))
	for _, c := range current {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := s.store.WriteCategories(kept); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	s.bus.PublishCategories()
	return nil
}
