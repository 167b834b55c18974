package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/config"
	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/storage"
)

var backends = []string{config.BackendJSON, config.BackendDiskv, config.BackendSQLite}

func open(t *testing.T, backend, dir string) storage.Repository {
	t.Helper()
	repo, err := storage.Open(context.Background(), config.StorageConfig{Backend: backend, Path: dir}, log.Discard())
	if err != nil {
		t.Fatalf("Open(%s): %v", backend, err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleEntries() []model.Entry {
	duration := "3 minutes"
	comments := "after coffee"
	dosage := "1/2 tablet"
	return []model.Entry{
		{
			ID:        "20260227-083210-aaaaaaaaaa",
			Type:      model.SVTEpisode,
			Timestamp: time.Date(2026, 2, 27, 8, 32, 10, 123456789, time.UTC),
			Details:   model.Details{Duration: &duration, Comments: &comments},
		},
		{
			ID:        "20260226-070000-bbbbbbbbbb",
			Type:      model.Medication,
			Timestamp: time.Date(2026, 2, 26, 7, 0, 0, 0, time.UTC),
			Details:   model.Details{Dosage: &dosage},
		},
		{
			ID:        "20260228-180000-cccccccccc",
			Type:      model.Exercise,
			Timestamp: time.Date(2026, 2, 28, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			repo := open(t, backend, t.TempDir())
			entries, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("Load on empty store: %v", err)
			}
			if entries == nil || len(entries) != 0 {
				t.Errorf("Load entries = %v, want empty non-nil slice", entries)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			repo := open(t, backend, t.TempDir())
			want := sampleEntries()
			if err := repo.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load after save: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Load entries = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].ID != want[i].ID {
					t.Errorf("entry %d id = %q, want %q (stored order must be kept)", i, got[i].ID, want[i].ID)
				}
				if got[i].Type != want[i].Type {
					t.Errorf("entry %d type = %v, want %v", i, got[i].Type, want[i].Type)
				}
				if !got[i].Timestamp.Equal(want[i].Timestamp) {
					t.Errorf("entry %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
				}
				for _, f := range []model.Field{model.FieldDuration, model.FieldDosage, model.FieldComments} {
					if got[i].Details.Value(f) != want[i].Details.Value(f) {
						t.Errorf("entry %d %s = %q, want %q", i, f, got[i].Details.Value(f), want[i].Details.Value(f))
					}
				}
			}
			if got[2].Details.Duration != nil || got[2].Details.Comments != nil {
				t.Errorf("absent details must stay absent, got %+v", got[2].Details)
			}
		})
	}
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			repo := open(t, backend, dir)
			if err := repo.Save(ctx, sampleEntries()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := repo.Save(ctx, sampleEntries()[1:2]); err != nil {
				t.Fatalf("second Save: %v", err)
			}
			if err := repo.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			// A fresh handle sees the replaced collection.
			got, err := open(t, backend, dir).Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 1 || got[0].ID != "20260226-070000-bbbbbbbbbb" {
				t.Errorf("Load after replace = %+v", got)
			}

			if err := open(t, backend, dir).Save(ctx, nil); err != nil {
				t.Fatalf("Save empty: %v", err)
			}
			got, err = open(t, backend, dir).Load(ctx)
			if err != nil || len(got) != 0 {
				t.Errorf("Load after empty save = %v, %v", got, err)
			}
		})
	}
}

func TestFileStoreCorruptBackup(t *testing.T) {
	// Verify that a corrupt JSON file is backed up and returns an error.
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := storage.NewFileStore(path, log.Discard()).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("error = %v, want ErrCorrupt", err)
	}

	// Backup file should exist.
	if _, statErr := os.Stat(path + ".corrupt"); statErr != nil {
		t.Errorf("backup file not found: %v", statErr)
	}
	// Original should be gone.
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("original file still exists after corrupt backup")
	}
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "entries.json")
	store := storage.NewFileStore(path, log.Discard())
	if err := store.Save(context.Background(), sampleEntries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
}

func TestDiskvStoreKey(t *testing.T) {
	dir := t.TempDir()
	repo := open(t, config.BackendDiskv, dir)
	if err := repo.Save(context.Background(), sampleEntries()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "kv", storage.DataKey)); err != nil {
		t.Errorf("expected blob under %s: %v", storage.DataKey, err)
	}
}

func TestDiskvStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "kv"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "kv", storage.DataKey), []byte(`{"not":"a list"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := open(t, config.BackendDiskv, dir).Load(context.Background())
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("error = %v, want ErrCorrupt", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := storage.Open(context.Background(), config.StorageConfig{Backend: "postgres", Path: t.TempDir()}, log.Discard())
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Errorf("error = %v, want ErrUnknownBackend", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := open(t, config.BackendJSON, t.TempDir())
	if err := repo.Save(ctx, sampleEntries()); !errors.Is(err, context.Canceled) {
		t.Errorf("Save with cancelled context = %v, want context.Canceled", err)
	}
}
