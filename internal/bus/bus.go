// Package bus delivers change notifications for the local (guest) mode,
// simulating the remote store's live feed. A Bus instance owns its own
// subscriber registries, so independent instances can coexist.
package bus

import (
	"sync"

	"cashier/internal/core"
	"cashier/internal/store"
)

type Bus struct {
	store        *store.Store
	transactions registry[core.Transaction]
	budgets      registry[core.Budget]
	categories   registry[core.Category]
}

func New(st *store.Store) *Bus {
	return &Bus{store: st}
}

// SubscribeTransactions registers fn, delivers the current snapshot once,
// and returns an idempotent unsubscribe.
func (b *Bus) SubscribeTransactions(fn func([]core.Transaction)) func() {
	unsubscribe := b.transactions.subscribe(fn)
	fn(b.store.ReadTransactions())
	return unsubscribe
}

// SubscribeBudgets registers fn, delivers the current snapshot once, and
// returns an idempotent unsubscribe.
func (b *Bus) SubscribeBudgets(fn func([]core.Budget)) func() {
	unsubscribe := b.budgets.subscribe(fn)
	fn(b.store.ReadBudgets())
	return unsubscribe
}

// SubscribeCategories registers fn, delivers the current snapshot once, and
// returns an idempotent unsubscribe. The first observation of an empty
// category slot seeds the defaults.
func (b *Bus) SubscribeCategories(fn func([]core.Category)) func() {
	unsubscribe := b.categories.subscribe(fn)
	fn(b.store.ReadCategoriesOrSeed())
	return unsubscribe
}

// PublishTransactions re-reads the store and notifies every transaction
// subscriber before returning.
func (b *Bus) PublishTransactions() {
	b.transactions.publish(b.store.ReadTransactions())
}

// PublishBudgets re-reads the store and notifies every budget subscriber
// before returning.
func (b *Bus) PublishBudgets() {
	b.budgets.publish(b.store.ReadBudgets())
}

// PublishCategories re-reads the store and notifies every category
// subscriber before returning.
func (b *Bus) PublishCategories() {
	b.categories.publish(b.store.ReadCategories())
}

// registry tracks subscribers of one record kind in registration order.
type registry[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func([]T)
}

func (r *registry[T]) subscribe(fn func([]T)) func() {
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs = append(r.subs, subscriber[T]{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
		// Already removed. Unsubscribing twice is a no-op.
	}
}

// publish delivers snapshot to every registered subscriber, in registration
// order, synchronously. A subscriber removed mid-delivery (for example by an
// earlier callback) is skipped, so a fired disposer always silences its
// callback.
func (r *registry[T]) publish(snapshot []T) {
	r.mu.Lock()
	ids := make([]int, len(r.subs))
	for i, s := range r.subs {
		ids[i] = s.id
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.mu.Lock()
		var fn func([]T)
		for _, s := range r.subs {
			if s.id == id {
				fn = s.fn
				break
			}
		}
		r.mu.Unlock()
		if fn != nil {
			fn(snapshot)
		}
	}
}
