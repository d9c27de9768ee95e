// Package backend selects and builds the key-value store the tracker
// persists into.
package backend

import (
	"fmt"

	"noura/internal/log"
	"noura/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function
type Result struct {
	Store   storage.KV
	Cleanup CleanupFunc
}

// Factory creates storage backends based on configuration
type Factory interface {
	CreateBackend(config Config) (*Result, error)
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentBackend)
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	store := storage.NewMemoryStore()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Store:   store,
		Cleanup: nil, // nothing to release for the memory backend
	}, nil
}
