// Package storage persists the whole entry collection as one unit. Every
// backend loads the full collection and replaces it wholesale on save.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/wellness-logger/internal/config"
	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

// Repository is the persistence contract for the entry collection.
type Repository interface {
	// Load returns the stored collection in stored order, or an empty
	// collection when nothing has been saved yet.
	Load(ctx context.Context) ([]model.Entry, error)
	// Save atomically replaces the stored collection.
	Save(ctx context.Context, entries []model.Entry) error
	Close() error
}

// ErrCorrupt is returned when stored data cannot be decoded.
var ErrCorrupt = errors.New("corrupt data")

const (
	jsonFileName   = "entries.json"
	diskvDirName   = "kv"
	sqliteFileName = "wellness.db"
)

// Open builds the backend selected by cfg.Backend inside cfg.Path.
func Open(ctx context.Context, cfg config.StorageConfig, logger log.LoggerService) (Repository, error) {
	if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating %s: %w", cfg.Path, err)
	}
	logger = logger.Named("storage")

	switch cfg.Backend {
	case config.BackendJSON, "":
		path := filepath.Join(cfg.Path, jsonFileName)
		logger.Debug("using json file %s", path)
		return NewFileStore(path, logger), nil
	case config.BackendDiskv:
		dir := filepath.Join(cfg.Path, diskvDirName)
		logger.Debug("using diskv store in %s", dir)
		return NewDiskvStore(dir, logger), nil
	case config.BackendSQLite:
		path := filepath.Join(cfg.Path, sqliteFileName)
		logger.Debug("using sqlite database %s", path)
		store, err := NewSQLiteStore(SQLiteConfig{Path: path}, logger)
		if err != nil {
			return nil, err
		}
		if err := store.Connect(ctx); err != nil {
			store.Close()
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

func emptyIfNil(entries []model.Entry) []model.Entry {
	if entries == nil {
		return []model.Entry{}
	}
	return entries
}
