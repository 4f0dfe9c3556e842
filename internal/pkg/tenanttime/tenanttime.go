// Package tenanttime converts instants into a tenant's configured time zone
// and derives the local calendar day used as the attendance record key.
package tenanttime

import (
	"fmt"
	"time"
)

// Location resolves an IANA time zone name, falling back to UTC when the
// name is empty or unknown.
func Location(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalDay returns midnight of t's calendar day in loc.
func LocalDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// ParseClock parses a wall-clock string ("15:04" or "15:04:05").
func ParseClock(clock string) (hour int, minute int, err error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
		}
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a local day with a wall-clock hour and minute in loc.
func At(day time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}

// WeekStart returns midnight of the Monday of t's ISO week in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := LocalDay(t, loc)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding ISO week
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// MonthStart returns midnight of the first day of t's month in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}
