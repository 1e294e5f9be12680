package timeutil

import (
	"fmt"
	"time"
)

// Normalizer maps raw epoch timestamps onto local hour-of-day keys.
// The location is explicit so that the same inputs resolve to the same
// hourly slots regardless of the process environment.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer wraps an already-resolved location.
func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return Normalizer{loc: loc}
}

// LoadNormalizer resolves an IANA zone name (e.g. "Europe/Sofia").
func LoadNormalizer(name string) (Normalizer, error) {
	if name == "" {
		return Normalizer{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Normalizer{}, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return Normalizer{loc: loc}, nil
}

// Location exposes the underlying zone.
func (n Normalizer) Location() *time.Location {
	if n.loc == nil {
		return time.UTC
	}
	return n.loc
}

// HourOf returns the local hour-of-day (0..23) for a unix timestamp in
// seconds. Negative and zero timestamps are valid epoch-relative instants
// and map to whatever local hour they fall in.
func (n Normalizer) HourOf(unixSeconds int64) int {
	return time.Unix(unixSeconds, 0).In(n.Location()).Hour()
}

// DayBounds parses an ISO date (YYYY-MM-DD) in the configured zone and
// returns the half-open [start, end) covering that local day.
func (n Normalizer) DayBounds(date string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, n.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// FormatHour renders an hour key as "HH:00". Values outside 0..23 are
// passed through unchecked ("-01:00", "25:00"); callers own validation.
func FormatHour(hour int) string {
	if hour < 0 {
		return fmt.Sprintf("-%02d:00", -hour)
	}
	return fmt.Sprintf("%02d:00", hour)
}
