package cmd

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	monthLayout = "2006-01"
)

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseWhen reads an --at value: a full timestamp, a local date and time,
// or a bare HH:MM meaning that time today.
func parseWhen(s string, now time.Time) (time.Time, error) {
	loc := now.Location()
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(clockLayout, s, loc); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (use YYYY-MM-DD HH:MM, HH:MM or RFC 3339)", s)
}

// parseDate reads a YYYY-MM-DD date in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// combine returns base with its date and/or clock time replaced. Empty
// strings keep the corresponding part of base.
func combine(base time.Time, date, clock string) (time.Time, error) {
	loc := base.Location()
	y, m, d := base.Date()
	hh, mm := base.Hour(), base.Minute()
	if date != "" {
		t, err := parseDate(date, loc)
		if err != nil {
			return time.Time{}, err
		}
		y, m, d = t.Date()
	}
	if clock != "" {
		t, err := time.ParseInLocation(clockLayout, clock, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot parse time %q (use HH:MM)", clock)
		}
		hh, mm = t.Hour(), t.Minute()
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc), nil
}

// parseMonth reads a YYYY-MM month.
func parseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot parse month %q (use YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}
