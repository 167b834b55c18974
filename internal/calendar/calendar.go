// Package calendar buckets entries by local calendar day and lays them out
// on a Sunday-first month grid.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/timecalc"
)

// MaxMarkers caps the per-category markers drawn in one cell. Overflow is
// not indicated.
const MaxMarkers = 3

const keyLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD key of t's own date components. Convert t
// to the display location first; never pass UTC for a local calendar.
func DateKey(t time.Time) string {
	return t.Format(keyLayout)
}

// ParseDateKey is the inverse of DateKey in the given location.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(keyLayout, key, loc)
}

// GroupByDate partitions entries by the date key of their timestamp in loc.
// Order within a bucket follows input order.
func GroupByDate(entries []model.Entry, loc *time.Location) map[string][]model.Entry {
	grouped := make(map[string][]model.Entry)
	for _, e := range entries {
		key := DateKey(e.Timestamp.In(loc))
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}

// ForDay returns the entries on day's calendar date in loc, oldest first.
func ForDay(entries []model.Entry, day time.Time, loc *time.Location) []model.Entry {
	day = day.In(loc)
	var out []model.Entry
	for _, e := range entries {
		if timecalc.SameDay(e.Timestamp.In(loc), day) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Cell is one day of the month grid.
type Cell struct {
	Date    time.Time
	Key     string
	InMonth bool
	IsToday bool
	Entries []model.Entry
	Markers map[model.Category]int
}

// Month is a 7-column grid covering whole weeks around one calendar month.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// BuildMonth lays out year/month in now's location, from the Sunday on or
// before the 1st to the Saturday on or after the last day.
func BuildMonth(year int, month time.Month, now time.Time, entries []model.Entry) Month {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	buckets := GroupByDate(entries, loc)
	m := Month{Year: year, Month: month}

	var week [7]Cell
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		week[d.Weekday()] = Cell{
			Date:    d,
			Key:     key,
			InMonth: d.Month() == month,
			IsToday: timecalc.SameDay(d, now),
			Entries: buckets[key],
			Markers: Markers(buckets[key]),
		}
		if d.Weekday() == time.Saturday {
			m.Weeks = append(m.Weeks, week)
			week = [7]Cell{}
		}
	}
	return m
}

// Markers counts entries per category, capped at MaxMarkers.
func Markers(entries []model.Entry) map[model.Category]int {
	counts := make(map[model.Category]int)
	for _, e := range entries {
		if counts[e.Type] < MaxMarkers {
			counts[e.Type]++
		}
	}
	return counts
}

// Title returns e.g. "January 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Next returns the year and month after m.
func (m Month) Next() (int, time.Month) {
	t := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Prev returns the year and month before m.
func (m Month) Prev() (int, time.Month) {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
