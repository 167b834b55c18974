// Package filter evaluates search, category and date constraints against an
// entry collection and summarises the result for display.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/timecalc"
)

// DateRange is one of the fixed windows relative to "now".
type DateRange string

const (
	AnyTime   DateRange = ""
	Today     DateRange = "today"
	Last7     DateRange = "last7"
	Last30    DateRange = "last30"
	ThisMonth DateRange = "thisMonth"
	LastMonth DateRange = "lastMonth"
)

// DateRanges lists the selectable windows in menu order.
var DateRanges = []DateRange{Today, Last7, Last30, ThisMonth, LastMonth}

// ParseDateRange accepts the window names case-insensitively.
func ParseDateRange(s string) (DateRange, error) {
	if s == "" {
		return AnyTime, nil
	}
	for _, r := range DateRanges {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return AnyTime, fmt.Errorf("unknown date range %q (want one of today, last7, last30, thisMonth, lastMonth)", s)
}

// Bounds returns the window boundaries relative to now. hasEnd is only true
// for LastMonth, the one backward-looking bounded window.
func (r DateRange) Bounds(now time.Time) (start, end time.Time, hasEnd bool) {
	switch r {
	case Today:
		return timecalc.StartOfDay(now), time.Time{}, false
	case Last7:
		return now.Add(-7 * timecalc.Day), time.Time{}, false
	case Last30:
		return now.Add(-30 * timecalc.Day), time.Time{}, false
	case ThisMonth:
		return timecalc.StartOfMonth(now), time.Time{}, false
	case LastMonth:
		start, end = timecalc.LastMonth(now)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Spec is the set of active constraints. Zero values mean "unset". From and
// To are calendar dates; only their date part (in their own location) is used.
type Spec struct {
	SearchText string
	Type       *model.Category
	Range      DateRange
	From       time.Time
	To         time.Time
}

// Active reports whether any constraint is set.
func (s Spec) Active() bool {
	return s.SearchText != "" || s.Type != nil || s.Range != AnyTime || !s.From.IsZero() || !s.To.IsZero()
}

// Apply returns the entries matching every active condition in spec. The input
// is not modified; the result is always a new slice.
func Apply(entries []model.Entry, spec Spec, now time.Time) []model.Entry {
	m := newMatcher(spec, now)
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

type matcher struct {
	search     string
	typ        *model.Category
	rangeStart time.Time
	rangeEnd   time.Time
	hasRange   bool
	hasEnd     bool
	from       time.Time
	to         time.Time
}

func newMatcher(spec Spec, now time.Time) matcher {
	m := matcher{
		search: strings.ToLower(spec.SearchText),
		typ:    spec.Type,
	}
	if spec.Range != AnyTime {
		m.hasRange = true
		m.rangeStart, m.rangeEnd, m.hasEnd = spec.Range.Bounds(now)
	}
	if !spec.From.IsZero() {
		m.from = timecalc.StartOfDay(spec.From)
	}
	if !spec.To.IsZero() {
		m.to = timecalc.EndOfDay(spec.To)
	}
	return m
}

func (m matcher) match(e model.Entry) bool {
	if m.search != "" {
		text := strings.ToLower(e.Type.String() + " " + e.Details.Value(model.FieldComments))
		if !strings.Contains(text, m.search) {
			return false
		}
	}
	if m.typ != nil && e.Type != *m.typ {
		return false
	}
	ts := e.Timestamp
	if m.hasRange {
		if ts.Before(m.rangeStart) {
			return false
		}
		if m.hasEnd && ts.After(m.rangeEnd) {
			return false
		}
	}
	if !m.from.IsZero() && ts.Before(m.from) {
		return false
	}
	if !m.to.IsZero() && ts.After(m.to) {
		return false
	}
	return true
}

// Description is a short slug naming the active constraints, used for
// filtered export file names.
func Description(spec Spec) string {
	var parts []string
	if spec.Type != nil {
		parts = append(parts, spec.Type.Slug())
	}
	from, to := "", ""
	if !spec.From.IsZero() {
		from = spec.From.Format("2006-01-02")
	}
	if !spec.To.IsZero() {
		to = spec.To.Format("2006-01-02")
	}
	switch {
	case spec.Range != AnyTime:
		parts = append(parts, string(spec.Range))
	case from != "" && to != "":
		parts = append(parts, from+"_to_"+to)
	case from != "":
		parts = append(parts, "from_"+from)
	case to != "":
		parts = append(parts, "to_"+to)
	}
	if spec.SearchText != "" {
		parts = append(parts, "search")
	}
	if len(parts) == 0 {
		return "custom"
	}
	return strings.Join(parts, "_")
}
