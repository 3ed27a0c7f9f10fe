// Package timefmt renders stored UTC instants in an organization's local
// time. Formatting is display-only: the UTC instant stays the source of truth.
package timefmt

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

// TimeFormat is the organization's clock preference
type TimeFormat string

const (
	Format12h TimeFormat = "12h"
	Format24h TimeFormat = "24h"
)

// Placeholder is rendered when a value is missing or cannot be formatted.
const Placeholder = "--:--"

const (
	layout12h = "03:04 PM"
	layout24h = "15:04"
)

// ParseTimeFormat validates a persisted preference
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch TimeFormat(strings.ToLower(strings.TrimSpace(s))) {
	case Format12h:
		return Format12h, nil
	case Format24h:
		return Format24h, nil
	}
	return "", fmt.Errorf("unknown time format %q", s)
}

func (f TimeFormat) layout() string {
	if f == Format12h {
		return layout12h
	}
	return layout24h
}

var locations sync.Map // string -> *time.Location

// Location loads an IANA timezone, caching the result. An empty name is UTC.
func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	locations.Store(name, loc)
	return loc, nil
}

// LocationOrUTC is Location with a UTC fallback for unknown names
func LocationOrUTC(name string) *time.Location {
	loc, err := Location(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Format renders t in tz using f. Nil times and unknown timezones yield
// Placeholder.
func Format(t *time.Time, tz string, f TimeFormat) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	loc, err := Location(tz)
	if err != nil {
		return Placeholder
	}
	return t.In(loc).Format(f.layout())
}

// FormatRFC3339 parses a stored timestamp string before formatting it.
func FormatRFC3339(raw string, tz string, f TimeFormat) string {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return Placeholder
	}
	return Format(&t, tz, f)
}

// RFC3339Ptr renders an optional instant as RFC3339 UTC, keeping nil as nil.
func RFC3339Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// Parse reverses Format: it reads a display string as a wall-clock time on
// the given local calendar date in tz and returns the UTC instant.
func Parse(display string, date time.Time, tz string, f TimeFormat) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(f.layout(), strings.TrimSpace(display))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc).UTC(), nil
}

// LocalDate returns midnight UTC of t's calendar date in loc. Calendar dates
// compare and key reliably this way regardless of the organization offset.
func LocalDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
