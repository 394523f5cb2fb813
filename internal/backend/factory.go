package backend

import (
	"context"
	"fmt"
	"log/slog"

	"cashier/internal/config"
	"cashier/internal/remote"
	"cashier/internal/store"
)

// Ensure the Firestore adapter satisfies the outbound port.
var _ RemoteStore = (*remote.Adapter)(nil)

// Factory creates sync services based on configuration
type Factory interface {
	// CreateService builds the facade. A configured Firestore project makes
	// the service remote-capable; otherwise it runs local-only, which is not
	// an error.
	CreateService(ctx context.Context, cfg *config.Config) (*Result, error)
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new service factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateService implements Factory.CreateService
func (f *DefaultFactory) CreateService(ctx context.Context, cfg *config.Config) (*Result, error) {
	st := store.New(cfg.DataDir)

	if cfg.FirestoreProjectID == "" {
		f.logger.Info("No remote store configured, running local-only", "data_dir", cfg.DataDir)
		return &Result{Service: NewService(nil, st)}, nil
	}

	adapter, err := remote.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize Firestore adapter: %w", err)
	}

	f.logger.Info("Initialized remote-capable sync service",
		"project_id", cfg.FirestoreProjectID,
		"data_dir", cfg.DataDir)

	return &Result{
		Service: NewService(adapter, st),
		Cleanup: adapter.Close,
	}, nil
}
