package backend

import (
	"context"
	"fmt"

	"trackfin/internal/blob"
	"trackfin/internal/blob/google"
	"trackfin/internal/blob/memory"
	applog "trackfin/internal/log"
	"trackfin/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	key := config.SnapshotKey
	if key == "" {
		key = blob.DefaultKey
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config, key)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, key)
	case MemoryBackend:
		return f.createMemoryBackend(key)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config, key string) (*BackendResult, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, key, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		applog.FieldSnapshotKey, key)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, key string) (*BackendResult, error) {
	cli, err := google.NewFromEnv(ctx, key, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", applog.FieldSnapshotKey, key)

	return &BackendResult{
		Store:   cli,
		Cleanup: nil, // No cleanup needed for sheets backend
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(key string) (*BackendResult, error) {
	store := memory.New(key, f.logger)

	f.logger.Info("Initialized memory backend", applog.FieldSnapshotKey, key)

	return &BackendResult{
		Store:   store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
