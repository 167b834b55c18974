package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

// DataKey is the single key the whole collection is stored under.
const DataKey = "wellness_log_data"

// DiskvStore keeps the collection as one JSON blob in a diskv key-value
// store. Writes go through a temp dir and are renamed into place.
type DiskvStore struct {
	d      *diskv.Diskv
	logger log.LoggerService
}

func NewDiskvStore(basePath string, logger log.LoggerService) *DiskvStore {
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, ".tmp"),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		logger: logger,
	}
}

func (s *DiskvStore) Load(ctx context.Context) ([]model.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.d.Has(DataKey) {
		return []model.Entry{}, nil
	}
	val, err := s.d.Read(DataKey)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", DataKey, err)
	}

	var entries []model.Entry
	if err := json.Unmarshal(val, &entries); err != nil {
		s.logger.Error("value under %s is not a valid entry list", DataKey)
		return nil, fmt.Errorf("%w under key %s: %v", ErrCorrupt, DataKey, err)
	}
	return emptyIfNil(entries), nil
}

func (s *DiskvStore) Save(ctx context.Context, entries []model.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := json.Marshal(emptyIfNil(entries))
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	if err := s.d.Write(DataKey, val); err != nil {
		return fmt.Errorf("storage error writing %s: %w", DataKey, err)
	}
	s.logger.Debug("saved %d entries under %s", len(entries), DataKey)
	return nil
}

func (s *DiskvStore) Close() error { return nil }
