// Package backend selects and opens the storage backend named in the config.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"spendlog/internal/config"
	"spendlog/internal/database"
	"spendlog/internal/logger"
	"spendlog/internal/storage"
	"spendlog/internal/storage/memory"
	"spendlog/internal/storage/mongo"
	"spendlog/internal/storage/sqlstore"
)

// Result is an opened store plus how it was obtained.
type Result struct {
	Store storage.Store
	// Name is the backend actually in use, which differs from the configured
	// one after a fallback.
	Name     string
	Fallback bool
	Cleanup  func() error
}

// Factory opens stores.
type Factory struct {
	log *zap.SugaredLogger
}

func NewFactory(log *zap.SugaredLogger) *Factory {
	if log == nil {
		log = logger.Named("backend")
	}
	return &Factory{log: log}
}

// Open connects to the configured backend. When it cannot be reached and
// cfg.FallbackToMemory is set, an in-memory store is returned instead.
func (f *Factory) Open(ctx context.Context, cfg *config.Config) (*Result, error) {
	store, err := f.open(ctx, cfg)
	if err == nil {
		f.log.Infow("Initialized storage backend", "backend", cfg.StorageBackend)
		return f.finish(ctx, cfg, store, cfg.StorageBackend, false)
	}
	if !cfg.FallbackToMemory || cfg.StorageBackend == config.BackendMemory {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.StorageBackend, err)
	}

	f.log.Warnw("Failed to open storage backend, continuing with in-memory storage",
		"backend", cfg.StorageBackend, "error", err)
	return f.finish(ctx, cfg, memory.New(), config.BackendMemory, true)
}

func (f *Factory) open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
		defer cancel()
		return mongo.Open(connectCtx, mongo.Options{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.MongoConnectTimeout,
			SocketTimeout:  cfg.MongoSocketTimeout,
		})
	case config.BackendPostgres, config.BackendSQLite:
		manager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, err
		}
		if err := manager.Prepare(); err != nil {
			_ = manager.Close()
			return nil, err
		}
		return sqlstore.New(manager.DB()), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.StorageBackend)
	}
}

func (f *Factory) finish(ctx context.Context, cfg *config.Config, store storage.Store, name string, fallback bool) (*Result, error) {
	if name == config.BackendMemory && cfg.SeedSampleData {
		if err := storage.Seed(ctx, store); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
		f.log.Infow("Seeded sample data", "expenses", storage.SampleExpenseCount)
	}
	return &Result{
		Store:    store,
		Name:     name,
		Fallback: fallback,
		Cleanup:  store.Close,
	}, nil
}
