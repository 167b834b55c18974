package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

// FileStore keeps the collection as a JSON array in a single file.
type FileStore struct {
	path   string
	logger log.LoggerService
}

func NewFileStore(path string, logger log.LoggerService) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. Returns an empty collection if the file does not
// exist. A corrupt file is moved aside to <path>.corrupt and reported.
func (s *FileStore) Load(ctx context.Context) ([]model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Back up corrupt file and abort.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		s.logger.Error("moved unreadable %s to %s", s.path, backupPath)
		return nil, fmt.Errorf("%w in %s (backed up to %s): %v", ErrCorrupt, s.path, backupPath, err)
	}
	return emptyIfNil(entries), nil
}

// Save atomically writes the collection.
func (s *FileStore) Save(ctx context.Context, entries []model.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(emptyIfNil(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	s.logger.Debug("saved %d entries to %s", len(entries), s.path)
	return nil
}

func (s *FileStore) Close() error { return nil }
