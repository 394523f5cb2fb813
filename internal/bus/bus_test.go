package bus

import (
	"testing"
	"time"

	"cashier/internal/core"
	"cashier/internal/store"
)

func newBus(t *testing.T) (*Bus, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir())
	return New(st), st
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	b, st := newBus(t)
	if err := st.WriteTransactions([]core.Transaction{{ID: "t1", Title: "x", Type: core.Outflow, Date: time.Now()}}); err != nil {
		t.Fatalf("WriteTransactions() error = %v", err)
	}

	var got []core.Transaction
	calls := 0
	unsubscribe := b.SubscribeTransactions(func(txs []core.Transaction) {
		calls++
		got = txs
	})
	defer unsubscribe()

	if calls != 1 {
		t.Fatalf("initial delivery count = %d, want 1", calls)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("initial snapshot = %v, want the persisted transaction", got)
	}
}

func TestPublishDeliversToAllInRegistrationOrder(t *testing.T) {
	b, st := newBus(t)

	var order []string
	u1 := b.SubscribeBudgets(func([]core.Budget) { order = append(order, "first") })
	u2 := b.SubscribeBudgets(func([]core.Budget) { order = append(order, "second") })
	defer u1()
	defer u2()
	order = nil // drop initial deliveries

	if err := st.WriteBudgets([]core.Budget{{ID: "food", Category: "Food", Limit: 100}}); err != nil {
		t.Fatalf("WriteBudgets() error = %v", err)
	}
	b.PublishBudgets()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v, want [first second]", order)
	}
}

func TestPublishDeliversFreshSnapshotToAllBeforeReturning(t *testing.T) {
	b, st := newBus(t)

	var a, c []core.Budget
	defer b.SubscribeBudgets(func(budgets []core.Budget) { a = budgets })()
	defer b.SubscribeBudgets(func(budgets []core.Budget) { c = budgets })()

	if err := st.WriteBudgets([]core.Budget{{ID: "food", Category: "Food", Limit: 100}}); err != nil {
		t.Fatalf("WriteBudgets() error = %v", err)
	}
	b.PublishBudgets()

	// Both subscribers hold the new snapshot the moment publish returns.
	if len(a) != 1 || len(c) != 1 {
		t.Fatalf("snapshots after publish: a=%v c=%v, want one budget each", a, c)
	}
}

func TestUnsubscribeStopsDeliveryOnlyForThatSubscriber(t *testing.T) {
	b, _ := newBus(t)

	first, second := 0, 0
	u1 := b.SubscribeTransactions(func([]core.Transaction) { first++ })
	u2 := b.SubscribeTransactions(func([]core.Transaction) { second++ })
	defer u2()

	u1()
	b.PublishTransactions()

	if first != 1 { // only the initial delivery
		t.Errorf("unsubscribed callback fired %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining subscriber fired %d times, want 2", second)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b, _ := newBus(t)
	unsubscribe := b.SubscribeCategories(func([]core.Category) {})
	unsubscribe()
	unsubscribe() // must not panic or disturb others

	calls := 0
	defer b.SubscribeCategories(func([]core.Category) { calls++ })()
	b.PublishCategories()
	if calls != 2 {
		t.Errorf("surviving subscriber fired %d times, want 2", calls)
	}
}

func TestUnsubscribeDuringPublishSilencesLaterDelivery(t *testing.T) {
	b, _ := newBus(t)

	lateCalls := 0
	var unsubscribeLate func()
	defer b.SubscribeTransactions(func([]core.Transaction) {
		if unsubscribeLate != nil {
			unsubscribeLate()
		}
	})()
	unsubscribeLate = b.SubscribeTransactions(func([]core.Transaction) { lateCalls++ })

	lateCalls = 0
	b.PublishTransactions()
	if lateCalls != 0 {
		t.Errorf("callback fired %d times after its disposer ran, want 0", lateCalls)
	}
}

func TestSubscribeCategoriesSeedsDefaultsOnce(t *testing.T) {
	b, _ := newBus(t)

	var first, second []core.Category
	defer b.SubscribeCategories(func(cats []core.Category) { first = cats })()
	defer b.SubscribeCategories(func(cats []core.Category) { second = cats })()

	wantLen := len(core.DefaultIncomeCategories) + len(core.DefaultExpenseCategories)
	if len(first) != wantLen || len(second) != wantLen {
		t.Fatalf("seeded lengths = %d, %d, want %d", len(first), len(second), wantLen)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("second subscriber saw reseeded category at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}
