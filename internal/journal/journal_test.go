package journal_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/wellness-logger/internal/export"
	"github.com/Tiliavir/wellness-logger/internal/journal"
	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/storage"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// countingRepo records how often the collection was written.
type countingRepo struct {
	storage.Repository
	saves int
}

func (r *countingRepo) Save(ctx context.Context, entries []model.Entry) error {
	r.saves++
	return r.Repository.Save(ctx, entries)
}

func newJournal(t *testing.T, opts ...journal.Option) (*journal.Journal, *countingRepo) {
	t.Helper()
	repo := &countingRepo{Repository: storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"), log.Discard())}
	opts = append([]journal.Option{journal.WithClock(func() time.Time { return now })}, opts...)
	return journal.New(repo, log.Discard(), opts...), repo
}

func str(s string) *string { return &s }

func TestQuickLogPresets(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)

	ex, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.Details{}, ex.Details)
	assert.True(t, ex.Timestamp.Equal(now))
	assert.True(t, strings.HasPrefix(ex.ID, "20240315-120000-"))

	svt, err := j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{})
	require.NoError(t, err)
	require.NotNil(t, svt.Details.Duration)
	assert.Equal(t, "1 minute", *svt.Details.Duration)
	assert.Nil(t, svt.Details.Dosage)

	med, err := j.QuickLog(ctx, model.Medication, journal.LogOptions{})
	require.NoError(t, err)
	require.NotNil(t, med.Details.Dosage)
	assert.Equal(t, "1/2 tablet", *med.Details.Dosage)

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ex.ID, entries[0].ID, "new entries are appended")
	assert.Equal(t, med.ID, entries[2].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestQuickLogOverrides(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t, journal.WithPresets(journal.Presets{SVTDuration: "30 seconds", MedicationDosage: ""}))

	at := now.Add(-2 * time.Hour)
	svt, err := j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{At: &at, Comments: str("while climbing stairs")})
	require.NoError(t, err)
	assert.True(t, svt.Timestamp.Equal(at))
	assert.Equal(t, "30 seconds", *svt.Details.Duration)
	assert.Equal(t, "while climbing stairs", *svt.Details.Comments)

	med, err := j.QuickLog(ctx, model.Medication, journal.LogOptions{})
	require.NoError(t, err)
	assert.Nil(t, med.Details.Dosage, "an empty preset leaves the field absent")

	cleared, err := j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{Duration: str("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Details.Duration)
}

func TestQuickLogRejectsForeignFields(t *testing.T) {
	j, repo := newJournal(t)
	_, err := j.QuickLog(context.Background(), model.Exercise, journal.LogOptions{Dosage: str("2 tablets")})
	assert.ErrorIs(t, err, model.ErrFieldNotSupported)
	assert.Zero(t, repo.saves)

	_, err = j.QuickLog(context.Background(), model.Category(42), journal.LogOptions{})
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)
	svt, err := j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{})
	require.NoError(t, err)
	other, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)

	moved := now.Add(-24 * time.Hour)
	ok, err := j.Edit(ctx, svt.ID, model.Patch{Timestamp: &moved, Duration: str("5 minutes"), Comments: str("felt dizzy")})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := j.Get(ctx, svt.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Timestamp.Equal(moved))
	assert.Equal(t, "5 minutes", *got.Details.Duration)
	assert.Equal(t, "felt dizzy", *got.Details.Comments)
	assert.Equal(t, svt.ID, got.ID, "the id never changes")

	untouched, _, err := j.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, untouched.ID)

	ok, err = j.Edit(ctx, svt.ID, model.Patch{Comments: str("")})
	require.NoError(t, err)
	assert.True(t, ok)
	got, _, _ = j.Get(ctx, svt.ID)
	assert.Nil(t, got.Details.Comments, "an empty value clears the field")
}

func TestEditRejectsForeignField(t *testing.T) {
	ctx := context.Background()
	j, repo := newJournal(t)
	ex, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)
	saves := repo.saves

	_, err = j.Edit(ctx, ex.ID, model.Patch{Duration: str("10 minutes")})
	assert.ErrorIs(t, err, model.ErrFieldNotSupported)
	assert.Equal(t, saves, repo.saves)
}

func TestMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	j, repo := newJournal(t)
	_, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)
	saves := repo.saves

	ok, err := j.Edit(ctx, "nope", model.Patch{Comments: str("x")})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = j.Delete(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := j.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, saves, repo.saves)
	entries, _ := j.Entries(ctx)
	assert.Len(t, entries, 1)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)
	a, _ := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	b, _ := j.QuickLog(ctx, model.Medication, journal.LogOptions{})
	c, _ := j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{})

	ok, err := j.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, a.ID, entries[0].ID)
	assert.Equal(t, c.ID, entries[1].ID)
}

func TestImportReplaces(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)
	_, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)

	data := `{"version":"1.1.0","entries":[
	  {"id":"1","type":"Medication","timestamp":"2024-03-01T08:00:00Z","details":{"dosage":"1 tablet"}},
	  {"id":"2","type":"SVT Episode","timestamp":"2024-03-02T21:15:00Z","details":{}}
	]}`
	n, err := j.Import(ctx, []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, model.SVTEpisode, entries[1].Type)
}

func TestImportRejectionLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	j, repo := newJournal(t)
	logged, err := j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	require.NoError(t, err)
	saves := repo.saves

	for _, data := range []string{
		`{"foo":"bar"}`,
		`[{"id":"1","type":"Exercise","timestamp":"2024-03-01T08:00:00Z","details":{}},{"id":"2","type":"Exercise"}]`,
	} {
		n, err := j.Import(ctx, []byte(data))
		assert.Zero(t, n)
		assert.ErrorIs(t, err, export.ErrInvalidImport)
	}

	assert.Equal(t, saves, repo.saves)
	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, logged.ID, entries[0].ID)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	j, _ := newJournal(t)
	_, _ = j.QuickLog(ctx, model.Exercise, journal.LogOptions{})
	_, _ = j.QuickLog(ctx, model.SVTEpisode, journal.LogOptions{})

	env, err := j.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, export.EnvelopeVersion, env.Version)
	assert.Equal(t, 2, env.TotalEntries)
	assert.True(t, env.ExportedAt.Equal(now))

	data, err := export.MarshalEnvelope(env)
	require.NoError(t, err)

	// An export imports back into an empty journal unchanged.
	fresh, _ := newJournal(t)
	n, err := fresh.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	back, _ := fresh.Entries(ctx)
	assert.Equal(t, env.Entries[1].ID, back[1].ID)
}

type failingRepo struct{ storage.Repository }

func (failingRepo) Load(context.Context) ([]model.Entry, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadErrorsPropagate(t *testing.T) {
	j := journal.New(failingRepo{}, log.Discard())
	_, err := j.QuickLog(context.Background(), model.Exercise, journal.LogOptions{})
	assert.EqualError(t, err, "disk on fire")
	_, err = j.Delete(context.Background(), "x")
	assert.Error(t, err)
}
