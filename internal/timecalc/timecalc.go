package timecalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Day is 24 hours of elapsed time, as opposed to one calendar day.
const Day = 24 * time.Hour

// GenerateID creates a unique entry ID based on timestamp and random suffix.
func GenerateID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s-%s", t.UTC().Format("20060102-150405"), suffix)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastMonth returns the first instant and the end-of-day of the last day of
// the month before t.
func LastMonth(t time.Time) (time.Time, time.Time) {
	thisMonth := StartOfMonth(t)
	start := thisMonth.AddDate(0, -1, 0)
	end := EndOfDay(thisMonth.AddDate(0, 0, -1))
	return start, end
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthSpan counts the calendar months from a to b inclusive, never less than 1.
func MonthSpan(a, b time.Time) int {
	n := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month()) + 1
	if n < 1 {
		return 1
	}
	return n
}

// WholeDays truncates the elapsed time between from and to to whole days,
// rounding towards negative infinity.
func WholeDays(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / Day)
	if d < 0 && d%Day != 0 {
		days--
	}
	return days
}
