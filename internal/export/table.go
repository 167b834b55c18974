// Package export renders the entry collection as a clinician-friendly CSV
// table or a JSON envelope, and parses bulk imports back into entries.
package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/filter"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

const (
	dateLayout = "1/2/2006"
	timeLayout = "03:04 PM"
	isoDate    = "2006-01-02"
)

// Header is the first line of every table.
var Header = []string{"Date", "Time", "Type", "Duration", "Dosage", "Comments"}

// ErrNothingToExport is returned when a file name is requested for no entries.
var ErrNothingToExport = errors.New("no entries to export")

// Table renders entries oldest first as CSV text, one line per entry after
// the header. Date and time are formatted in loc. The input is not reordered.
func Table(entries []model.Entry, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')

	for _, e := range Sorted(entries) {
		ts := e.Timestamp.In(loc)
		row := []string{
			ts.Format(dateLayout),
			ts.Format(timeLayout),
			e.Type.String(),
			e.Details.Value(model.FieldDuration),
			e.Details.Value(model.FieldDosage),
			e.Details.Value(model.FieldComments),
		}
		for i, f := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Sorted returns a copy of entries in ascending timestamp order. Entries with
// equal timestamps keep their relative order.
func Sorted(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Escape wraps a field in quotes if it contains a comma, quote, or newline.
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// TableFileName names a full export after the UTC dates of its oldest and
// newest entries.
func TableFileName(entries []model.Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}
	sorted := Sorted(entries)
	first := sorted[0].Timestamp.UTC().Format(isoDate)
	last := sorted[len(sorted)-1].Timestamp.UTC().Format(isoDate)
	return fmt.Sprintf("wellness_log_%s_to_%s.csv", first, last), nil
}

// FilteredTableFileName names a filtered export after the active filter and
// today's UTC date.
func FilteredTableFileName(spec filter.Spec, now time.Time) string {
	return fmt.Sprintf("wellness_log_filtered_%s_%s.csv", filter.Description(spec), now.UTC().Format(isoDate))
}

// EnvelopeFileName names a JSON backup after today's UTC date.
func EnvelopeFileName(now time.Time) string {
	return fmt.Sprintf("wellness_log_%s.json", now.UTC().Format(isoDate))
}
