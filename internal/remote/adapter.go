// Package remote bridges per-user Cloud Firestore collections to the
// snapshot-callback contract of the sync facade. Records live under
// users/{userID}/{transactions|budgets|categories}.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	goption "google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cashier/internal/core"
)

type Adapter struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Adapter {
	return &Adapter{client: client}
}

// NewFromEnv creates a Firestore-backed adapter using environment variables
// and ADC.
// Required: FIRESTORE_PROJECT_ID (or GOOGLE_CLOUD_PROJECT)
// Optional: GOOGLE_CREDENTIALS_FILE for auth, FIRESTORE_DATABASE_ID for a
// named database (default "(default)").
func NewFromEnv(ctx context.Context) (*Adapter, error) {
	projectID := strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID"))
	if projectID == "" {
		projectID = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}
	if projectID == "" {
		return nil, errors.New("missing FIRESTORE_PROJECT_ID")
	}

	var opts []goption.ClientOption
	if credFile := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE")); credFile != "" {
		opts = append(opts, goption.WithCredentialsFile(credFile))
	}

	databaseID := strings.TrimSpace(os.Getenv("FIRESTORE_DATABASE_ID"))
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	slog.Info("Initialized Firestore adapter", "project_id", projectID, "database", databaseID)
	return &Adapter{client: client}, nil
}

// Close releases the underlying Firestore client.
func (a *Adapter) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func (a *Adapter) collection(userID string, kind core.Kind) *firestore.CollectionRef {
	return a.client.Collection("users").Doc(userID).Collection(string(kind))
}

// AddTransaction appends a transaction with a store-assigned identifier.
// A zero date means "now".
func (a *Adapter) AddTransaction(ctx context.Context, userID, title string, amount float64, ft core.FlowType, category string, date time.Time) error {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	_, _, err := a.collection(userID, core.KindTransactions).Add(ctx, map[string]interface{}{
		"title":    title,
		"amount":   amount,
		"type":     string(ft),
		"category": category,
		"date":     date,
	})
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by identifier. Deleting an
// identifier that no longer exists is a success.
func (a *Adapter) DeleteTransaction(ctx context.Context, userID, id string) error {
	return a.deleteDoc(ctx, userID, core.KindTransactions, id)
}

// SaveBudget upserts the budget for category. The document identifier is the
// slugified category name, so repeated saves overwrite one document.
func (a *Adapter) SaveBudget(ctx context.Context, userID, category string, limit float64) error {
	id := core.Slugify(category)
	_, err := a.collection(userID, core.KindBudgets).Doc(id).Set(ctx, map[string]interface{}{
		"category": category,
		"limit":    limit,
	})
	if err != nil {
		return fmt.Errorf("save budget %q: %w", id, err)
	}
	return nil
}

// DeleteBudget removes a budget by identifier.
func (a *Adapter) DeleteBudget(ctx context.Context, userID, id string) error {
	return a.deleteDoc(ctx, userID, core.KindBudgets, id)
}

// AddCategory appends a category with a store-assigned identifier.
func (a *Adapter) AddCategory(ctx context.Context, userID, name string, ft core.FlowType) error {
	_, _, err := a.collection(userID, core.KindCategories).Add(ctx, map[string]interface{}{
		"name": name,
		"type": string(ft),
	})
	if err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category by identifier.
func (a *Adapter) DeleteCategory(ctx context.Context, userID, id string) error {
	return a.deleteDoc(ctx, userID, core.KindCategories, id)
}

func (a *Adapter) deleteDoc(ctx context.Context, userID string, kind core.Kind, id string) error {
	_, err := a.collection(userID, kind).Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}
