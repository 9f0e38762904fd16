// Package backend selects and constructs the persistence stores for the
// two namespaces (app-local and widget-shared) from configuration.
package backend

import (
	"fmt"

	"walletlens/internal/config"
	"walletlens/internal/kvstore"
	"walletlens/internal/log"
)

// Type represents the kind of persistence backend
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to open both namespaces.
type Config struct {
	Type Type

	// File backend
	DataDir       string
	SharedDataDir string

	// SQLite backend
	SQLiteDBPath     string
	SharedSQLitePath string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.StorageBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.StorageBackend)
	}

	return Config{
		Type:             backendType,
		DataDir:          appConfig.DataDir,
		SharedDataDir:    appConfig.SharedDataDir,
		SQLiteDBPath:     appConfig.SQLiteDBPath,
		SharedSQLitePath: appConfig.SharedSQLitePath,
	}, nil
}

// Stores is the pair of opened namespaces plus their cleanup function.
type Stores struct {
	App     kvstore.Store
	Shared  kvstore.Store
	Cleanup func() error
}

// Open constructs both stores for the configured backend type.
func Open(cfg Config, logger *log.Logger) (*Stores, error) {
	logger = logger.WithComponent(log.ComponentBackend)

	switch cfg.Type {
	case FileBackend:
		app, err := kvstore.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open app file store: %w", err)
		}
		shared, err := kvstore.NewFileStore(cfg.SharedDataDir)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("open shared file store: %w", err)
		}
		logger.Info("Initialized file backend",
			"data_dir", cfg.DataDir,
			"shared_data_dir", cfg.SharedDataDir)
		return &Stores{App: app, Shared: shared, Cleanup: closeBoth(app, shared)}, nil

	case SQLiteBackend:
		app, err := kvstore.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open app sqlite store: %w", err)
		}
		shared, err := kvstore.NewSQLiteStore(cfg.SharedSQLitePath)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("open shared sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite backend",
			"db_path", cfg.SQLiteDBPath,
			"shared_db_path", cfg.SharedSQLitePath)
		return &Stores{App: app, Shared: shared, Cleanup: closeBoth(app, shared)}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func closeBoth(app, shared kvstore.Store) func() error {
	return func() error {
		errApp := app.Close()
		errShared := shared.Close()
		if errApp != nil {
			return errApp
		}
		return errShared
	}
}
