package database

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	ref := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	start, end := DayBounds(ref, 0)

	if !start.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want midnight of the same day", start)
	}
	if !end.Equal(time.Date(2025, 6, 15, 23, 59, 59, 999000000, time.UTC)) {
		t.Errorf("end = %v, want 23:59:59.999", end)
	}
}

func TestDayBoundsDaysAgo(t *testing.T) {
	ref := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	start, end := DayBounds(ref, 6)

	if start.Day() != 9 || start.Month() != time.June {
		t.Errorf("start = %v, want June 9", start)
	}
	if end.Sub(start) != 24*time.Hour-time.Millisecond {
		t.Errorf("window length = %v, want one day minus 1ms", end.Sub(start))
	}
}
