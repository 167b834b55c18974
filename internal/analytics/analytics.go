// Package analytics derives streaks, per-category counts, time-of-day
// distributions and duration statistics from the full entry collection.
//
// Every function takes the collection snapshot and, where the result depends
// on the current time, an explicit now. Calendar arithmetic happens in
// now.Location().
package analytics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/calendar"
	"github.com/Tiliavir/wellness-logger/internal/model"
	"github.com/Tiliavir/wellness-logger/internal/timecalc"
)

// Placeholder is displayed when a statistic has no data.
const Placeholder = "-"

// WeeksPerMonth approximates the number of weeks in the trailing 30 days.
const WeeksPerMonth = 4.3

// RecentWindow is the trailing window used by the pattern statistics.
const RecentWindow = 30

var leadingDigits = regexp.MustCompile(`\d+`)

// ExerciseStreak counts consecutive calendar days with at least one exercise
// entry, walking back from today. If today has none but yesterday does, the
// walk starts at yesterday.
func ExerciseStreak(entries []model.Entry, now time.Time) int {
	loc := now.Location()
	days := make(map[string]bool)
	for _, e := range entries {
		if e.Type == model.Exercise {
			days[calendar.DateKey(e.Timestamp.In(loc))] = true
		}
	}

	day := timecalc.StartOfDay(now)
	if !days[calendar.DateKey(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[calendar.DateKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CountThisMonth counts entries of category c since the first of now's month.
func CountThisMonth(entries []model.Entry, c model.Category, now time.Time) int {
	start := timecalc.StartOfMonth(now)
	n := 0
	for _, e := range entries {
		if e.Type == c && !e.Timestamp.Before(start) {
			n++
		}
	}
	return n
}

// AveragePerMonth divides the number of c entries by the inclusive month span
// between the earliest and latest of them. Months are taken from loc.
func AveragePerMonth(entries []model.Entry, c model.Category, loc *time.Location) float64 {
	var first, last time.Time
	n := 0
	for _, e := range entries {
		if e.Type != c {
			continue
		}
		if n == 0 || e.Timestamp.Before(first) {
			first = e.Timestamp
		}
		if n == 0 || e.Timestamp.After(last) {
			last = e.Timestamp
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(n) / float64(timecalc.MonthSpan(first.In(loc), last.In(loc)))
}

// MostActiveDay returns the weekday name with the most entries. Ties go to
// the earliest day in Sunday..Saturday order.
func MostActiveDay(entries []model.Entry, loc *time.Location) string {
	var tally [7]int
	for _, e := range entries {
		tally[e.Timestamp.In(loc).Weekday()]++
	}
	best, top := Placeholder, 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if tally[d] > top {
			best, top = d.String(), tally[d]
		}
	}
	return best
}

// TimeOfDay is one of the four fixed six-hour windows.
type TimeOfDay int

const (
	Morning TimeOfDay = iota
	Afternoon
	Evening
	Night
)

var timeOfDayLabels = [...]string{
	Morning:   "Morning (6-12)",
	Afternoon: "Afternoon (12-18)",
	Evening:   "Evening (18-24)",
	Night:     "Night (0-6)",
}

func (t TimeOfDay) String() string {
	return timeOfDayLabels[t]
}

// TimeOfDayOf buckets an hour of the day.
func TimeOfDayOf(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18:
		return Evening
	}
	return Night
}

// MostCommonTimeOfDay returns the label of the window with the most c
// entries, ties going to the earliest in Morning, Afternoon, Evening, Night.
func MostCommonTimeOfDay(entries []model.Entry, c model.Category, loc *time.Location) string {
	var tally [4]int
	for _, e := range entries {
		if e.Type == c {
			tally[TimeOfDayOf(e.Timestamp.In(loc).Hour())]++
		}
	}
	best, top := Placeholder, 0
	for t := Morning; t <= Night; t++ {
		if tally[t] > top {
			best, top = t.String(), tally[t]
		}
	}
	return best
}

// ParseDuration extracts the first run of digits from a free-text duration
// such as "3 minutes". ok is false when there is none.
func ParseDuration(text string) (int, bool) {
	m := leadingDigits.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AverageDuration averages the parseable durations of entries and formats
// the result as "2.0 min". Entries without one are excluded.
func AverageDuration(entries []model.Entry) string {
	sum, n := 0, 0
	for _, e := range entries {
		if e.Details.Duration == nil {
			continue
		}
		if v, ok := ParseDuration(*e.Details.Duration); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.1f min", float64(sum)/float64(n))
}

// DaysSince describes how long ago the most recent entry of a category was.
type DaysSince struct {
	Found bool
	Today bool
	Days  int
}

func (d DaysSince) String() string {
	switch {
	case !d.Found:
		return Placeholder
	case d.Today:
		return "Today"
	case d.Days == 1:
		return "1 day"
	}
	return fmt.Sprintf("%d days", d.Days)
}

// DaysSinceLast finds the latest c entry. Same calendar day as now reports
// Today; otherwise Days is the elapsed time truncated to whole days.
func DaysSinceLast(entries []model.Entry, c model.Category, now time.Time) DaysSince {
	var last time.Time
	found := false
	for _, e := range entries {
		if e.Type == c && (!found || e.Timestamp.After(last)) {
			last, found = e.Timestamp, true
		}
	}
	if !found {
		return DaysSince{}
	}
	if timecalc.SameDay(last.In(now.Location()), now) {
		return DaysSince{Found: true, Today: true}
	}
	return DaysSince{Found: true, Days: timecalc.WholeDays(last, now)}
}

// Recent returns the entries at or after now minus RecentWindow calendar days.
func Recent(entries []model.Entry, now time.Time) []model.Entry {
	start := now.AddDate(0, 0, -RecentWindow)
	var out []model.Entry
	for _, e := range entries {
		if !e.Timestamp.Before(start) {
			out = append(out, e)
		}
	}
	return out
}

// OfType returns the entries of category c.
func OfType(entries []model.Entry, c model.Category) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.Type == c {
			out = append(out, e)
		}
	}
	return out
}

// WeeklyAverage is the number of c entries in the trailing window divided by
// WeeksPerMonth, rounded to one decimal.
func WeeklyAverage(entries []model.Entry, c model.Category, now time.Time) float64 {
	n := len(OfType(Recent(entries, now), c))
	return RoundTenth(float64(n) / WeeksPerMonth)
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
