package timeutil

import (
	"testing"
	"time"
)

func TestHourOfUsesConfiguredZone(t *testing.T) {
	n := NewNormalizer(time.FixedZone("EET", 2*60*60))

	// 06:00 UTC is 08:00 in EET.
	ts := time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC).Unix()
	if got := n.HourOf(ts); got != 8 {
		t.Fatalf("expected hour 8, got %d", got)
	}
}

func TestHourOfAcceptsNonPositiveTimestamps(t *testing.T) {
	n := NewNormalizer(time.UTC)

	if got := n.HourOf(0); got != 0 {
		t.Fatalf("epoch start should map to hour 0 UTC, got %d", got)
	}
	if got := n.HourOf(-3600); got != 23 {
		t.Fatalf("negative timestamps are valid instants, got %d", got)
	}
}

func TestFormatHour(t *testing.T) {
	cases := map[int]string{
		0:  "00:00",
		9:  "09:00",
		23: "23:00",
		// Out-of-range values pass through unvalidated.
		-1: "-01:00",
		25: "25:00",
	}
	for hour, want := range cases {
		if got := FormatHour(hour); got != want {
			t.Fatalf("FormatHour(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	n := NewNormalizer(loc)

	start, end, err := n.DayBounds("2025-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, loc)) {
		t.Fatalf("wrong start: %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("expected a 24h window, got %v", end.Sub(start))
	}

	if _, _, err := n.DayBounds("15.01.2025"); err == nil {
		t.Fatal("non-ISO dates must be rejected")
	}
}

func TestLoadNormalizer(t *testing.T) {
	if _, err := LoadNormalizer("Not/AZone"); err == nil {
		t.Fatal("unknown zones must error")
	}
	n, err := LoadNormalizer("")
	if err != nil {
		t.Fatal(err)
	}
	if n.Location() != time.UTC {
		t.Fatal("empty zone name should default to UTC")
	}
}
