package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

// entryRecord is one row of the entries table. Ordinal (1-based) keeps the
// stored order of the collection; timestamps are stored as RFC 3339 text in UTC so
// nanoseconds survive the round trip.
type entryRecord struct {
	Ordinal   int    `gorm:"primaryKey;autoIncrement:false"`
	ID        string `gorm:"column:entry_id;uniqueIndex;not null"`
	Type      string `gorm:"not null"`
	Timestamp string `gorm:"not null;index"`
	Duration  *string
	Dosage    *string
	Comments  *string
}

func (entryRecord) TableName() string { return "entries" }

func toRecord(ordinal int, e model.Entry) entryRecord {
	return entryRecord{
		Ordinal:   ordinal,
		ID:        e.ID,
		Type:      e.Type.String(),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		Duration:  e.Details.Duration,
		Dosage:    e.Details.Dosage,
		Comments:  e.Details.Comments,
	}
}

func (r entryRecord) toEntry() (model.Entry, error) {
	c, err := model.ParseCategory(r.Type)
	if err != nil {
		return model.Entry{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return model.Entry{}, err
	}
	return model.Entry{
		ID:        r.ID,
		Type:      c,
		Timestamp: ts,
		Details: model.Details{
			Duration: r.Duration,
			Dosage:   r.Dosage,
			Comments: r.Comments,
		},
	}, nil
}

// SQLiteStore keeps the collection in a SQLite database, one row per entry.
type SQLiteStore struct {
	db     *gorm.DB
	path   string
	logger log.LoggerService
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// NewSQLiteStore opens the database file. Call Connect and Migrate before use.
func NewSQLiteStore(cfg SQLiteConfig, l log.LoggerService) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{db: db, path: cfg.Path, logger: l}, nil
}

// Connect configures the connection pool and checks the database is reachable.
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the entries table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&entryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Entry, error) {
	var records []entryRecord
	if err := s.db.WithContext(ctx).Order("ordinal").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	entries := make([]model.Entry, 0, len(records))
	for _, r := range records {
		e, err := r.toEntry()
		if err != nil {
			s.logger.Error("row %d (%s) cannot be decoded", r.Ordinal, r.ID)
			return nil, fmt.Errorf("%w in row %d: %v", ErrCorrupt, r.Ordinal, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []model.Entry) error {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = toRecord(i+1, e)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entryRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 200).Error
	})
	if err != nil {
		return fmt.Errorf("storage error writing %s: %w", s.path, err)
	}
	s.logger.Debug("saved %d entries to %s", len(entries), s.path)
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
