// Package journal applies user actions to the stored entry collection. Each
// mutation loads the collection, changes a copy and saves it back in one
// call, so a failed step never leaves a half-applied change behind.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/config"
	"github.com/Tiliavir/wellness-logger/internal/export"
	"github.com/Tiliavir/wellness-logger/internal/log"
	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/storage"
	"github.com/Tiliavir/wellness-logger/internal/timecalc"
)

// Presets are the details a quick log fills in before any override.
type Presets struct {
	SVTDuration      string
	MedicationDosage string
}

// DefaultPresets matches the built-in configuration.
var DefaultPresets = Presets{
	SVTDuration:      config.DefaultSVTDuration,
	MedicationDosage: config.DefaultMedicationDosage,
}

// PresetsFrom converts the configured presets.
func PresetsFrom(cfg config.PresetsConfig) Presets {
	return Presets{SVTDuration: cfg.SVTDuration, MedicationDosage: cfg.MedicationDosage}
}

type Journal struct {
	repo    storage.Repository
	logger  log.LoggerService
	now     func() time.Time
	presets Presets
}

type Option func(*Journal)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

func WithPresets(p Presets) Option {
	return func(j *Journal) { j.presets = p }
}

func New(repo storage.Repository, logger log.LoggerService, opts ...Option) *Journal {
	j := &Journal{
		repo:    repo,
		logger:  logger.Named("journal"),
		now:     time.Now,
		presets: DefaultPresets,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Now returns the journal's current time.
func (j *Journal) Now() time.Time {
	return j.now()
}

// LogOptions override the quick-log defaults. Nil fields keep the default.
type LogOptions struct {
	At       *time.Time
	Duration *string
	Dosage   *string
	Comments *string
}

func (o LogOptions) patch() model.Patch {
	return model.Patch{Duration: o.Duration, Dosage: o.Dosage, Comments: o.Comments}
}

// QuickLog records a new event of category c now, or at opts.At. SVT
// episodes and medications get the preset duration and dosage unless opts
// overrides them.
func (j *Journal) QuickLog(ctx context.Context, c model.Category, opts LogOptions) (model.Entry, error) {
	if !c.Valid() {
		return model.Entry{}, fmt.Errorf("%w: %d", model.ErrUnknownCategory, int(c))
	}
	now := j.now()
	ts := now
	if opts.At != nil {
		ts = *opts.At
	}

	e := model.Entry{ID: timecalc.GenerateID(now), Type: c, Timestamp: ts}
	switch c {
	case model.SVTEpisode:
		e.Details.Duration = model.OptionalString(j.presets.SVTDuration)
	case model.Medication:
		e.Details.Dosage = model.OptionalString(j.presets.MedicationDosage)
	}
	e, err := e.Apply(opts.patch())
	if err != nil {
		return model.Entry{}, err
	}

	entries, err := j.repo.Load(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	if err := j.repo.Save(ctx, append(entries, e)); err != nil {
		return model.Entry{}, err
	}
	j.logger.Info("logged %s %s", e.Type, e.ID)
	return e, nil
}

// Entries returns the whole collection in stored order.
func (j *Journal) Entries(ctx context.Context) ([]model.Entry, error) {
	return j.repo.Load(ctx)
}

// Get looks an entry up by id.
func (j *Journal) Get(ctx context.Context, id string) (model.Entry, bool, error) {
	entries, err := j.repo.Load(ctx)
	if err != nil {
		return model.Entry{}, false, err
	}
	if i := indexOf(entries, id); i >= 0 {
		return entries[i], true, nil
	}
	return model.Entry{}, false, nil
}

// Edit applies p to the entry with the given id. A missing id changes
// nothing and reports false.
func (j *Journal) Edit(ctx context.Context, id string, p model.Patch) (bool, error) {
	entries, err := j.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		j.logger.Debug("edit: no entry %s", id)
		return false, nil
	}
	updated, err := entries[i].Apply(p)
	if err != nil {
		return false, err
	}

	next := make([]model.Entry, len(entries))
	copy(next, entries)
	next[i] = updated
	if err := j.repo.Save(ctx, next); err != nil {
		return false, err
	}
	j.logger.Info("edited %s", id)
	return true, nil
}

// Delete removes the entry with the given id. A missing id changes nothing
// and reports false.
func (j *Journal) Delete(ctx context.Context, id string) (bool, error) {
	entries, err := j.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		j.logger.Debug("delete: no entry %s", id)
		return false, nil
	}

	next := make([]model.Entry, 0, len(entries)-1)
	next = append(next, entries[:i]...)
	next = append(next, entries[i+1:]...)
	if err := j.repo.Save(ctx, next); err != nil {
		return false, err
	}
	j.logger.Info("deleted %s", id)
	return true, nil
}

// Import replaces the whole collection with the entries in data, a bare
// array or an export envelope. A rejected document leaves storage untouched.
func (j *Journal) Import(ctx context.Context, data []byte) (int, error) {
	entries, err := export.ParseImport(data)
	if err != nil {
		j.logger.Warn("import rejected: %v", err)
		return 0, err
	}
	if err := j.repo.Save(ctx, entries); err != nil {
		return 0, err
	}
	j.logger.Info("imported %d entries", len(entries))
	return len(entries), nil
}

// Export wraps the stored collection in an envelope stamped with now.
func (j *Journal) Export(ctx context.Context) (model.Envelope, error) {
	entries, err := j.repo.Load(ctx)
	if err != nil {
		return model.Envelope{}, err
	}
	return export.NewEnvelope(entries, j.now()), nil
}

func indexOf(entries []model.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
