// internal/timeutil/timeutil_test.go
package timeutil

import (
	"testing"
	"time"
)

func TestHoursUntil(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, JST)

	if got := HoursUntil(now.Add(150*time.Minute), now); got != 2.5 {
		t.Errorf("HoursUntil(+150m) = %v, want 2.5", got)
	}
	if got := HoursUntil(now.Add(-time.Hour), now); got != -1 {
		t.Errorf("HoursUntil(-1h) = %v, want -1", got)
	}
}

func TestRound1(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{2.44, 2.4},
		{2.45, 2.5},
		{-2.45, -2.5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round1(tc.in); got != tc.want {
			t.Errorf("Round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestJSTOffset(t *testing.T) {
	_, offset := time.Date(2026, 2, 7, 12, 0, 0, 0, JST).Zone()
	if offset != 9*60*60 {
		t.Errorf("JST offset = %d, want +9h", offset)
	}
}
