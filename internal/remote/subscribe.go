package remote

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cashier/internal/core"
)

// SubscribeTransactions opens a live query ordered by date descending and
// invokes onUpdate with the full recomputed list on every server-observed
// change. Structural or permission failures go to onError, after which the
// subscription is inert. The returned func cancels the subscription; calling
// it before the first result arrives suppresses all delivery.
func (a *Adapter) SubscribeTransactions(ctx context.Context, userID string, onUpdate func([]core.Transaction), onError func(error)) func() {
	query := a.collection(userID, core.KindTransactions).Query.OrderBy("date", firestore.Desc)
	return a.watch(ctx, query, onError, func(snap *firestore.QuerySnapshot) error {
		txs := make([]core.Transaction, 0)
		if err := eachDocument(snap, func(doc *firestore.DocumentSnapshot) {
			txs = append(txs, docToTransaction(doc.Ref.ID, doc.Data()))
		}); err != nil {
			return err
		}
		onUpdate(txs)
		return nil
	})
}

// SubscribeBudgets opens an unordered live query over the user's budgets.
func (a *Adapter) SubscribeBudgets(ctx context.Context, userID string, onUpdate func([]core.Budget), onError func(error)) func() {
	query := a.collection(userID, core.KindBudgets).Query
	return a.watch(ctx, query, onError, func(snap *firestore.QuerySnapshot) error {
		budgets := make([]core.Budget, 0)
		if err := eachDocument(snap, func(doc *firestore.DocumentSnapshot) {
			budgets = append(budgets, docToBudget(doc.Ref.ID, doc.Data()))
		}); err != nil {
			return err
		}
		onUpdate(budgets)
		return nil
	})
}

// SubscribeCategories opens an unordered live query over the user's
// categories. When the first observed result set is empty, the default
// category set is inserted in one batched write and delivery waits for the
// store to re-observe it; the synthesized defaults are never handed to
// onUpdate directly, which keeps a second subscriber from seeing a
// double-delivered or duplicated seed.
func (a *Adapter) SubscribeCategories(ctx context.Context, userID string, onUpdate func([]core.Category), onError func(error)) func() {
	seeded := false
	collection := a.collection(userID, core.KindCategories)
	return a.watch(ctx, collection.Query, onError, func(snap *firestore.QuerySnapshot) error {
		cats := make([]core.Category, 0)
		if err := eachDocument(snap, func(doc *firestore.DocumentSnapshot) {
			cats = append(cats, docToCategory(doc.Ref.ID, doc.Data()))
		}); err != nil {
			return err
		}

		if len(cats) == 0 && !seeded {
			seeded = true
			if err := a.seedCategories(ctx, collection); err != nil {
				slog.Error("Failed to seed default categories", "user_id", userID, "error", err)
			}
			return nil // deliver on the re-observed snapshot
		}

		onUpdate(cats)
		return nil
	})
}

func (a *Adapter) seedCategories(ctx context.Context, collection *firestore.CollectionRef) error {
	batch := a.client.Batch()
	for _, c := range core.DefaultCategories() {
		batch.Set(collection.NewDoc(), map[string]interface{}{
			"name": c.Name,
			"type": string(c.Type),
		})
	}
	_, err := batch.Commit(ctx)
	return err
}

// watch runs the snapshot loop for one live query. deliver is called with
// each consistent result set; the loop stops on cancellation or on the first
// error, which is routed to onError.
func (a *Adapter) watch(ctx context.Context, query firestore.Query, onError func(error), deliver func(*firestore.QuerySnapshot) error) func() {
	watchCtx, cancel := context.WithCancel(ctx)
	snapshots := query.Snapshots(watchCtx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if watchCtx.Err() != nil || status.Code(err) == codes.Canceled {
					return // torn down, stay silent
				}
				onError(err)
				return
			}
			if watchCtx.Err() != nil {
				return
			}
			if err := deliver(snap); err != nil {
				if watchCtx.Err() == nil {
					onError(err)
				}
				return
			}
		}
	}()

	return cancel
}

func eachDocument(snap *firestore.QuerySnapshot, fn func(*firestore.DocumentSnapshot)) error {
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		fn(doc)
	}
}
