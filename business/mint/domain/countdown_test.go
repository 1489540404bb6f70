package domain

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   Countdown
	}{
		{
			"mixed units",
			now.Add(49*time.Hour + 30*time.Minute + 15*time.Second),
			Countdown{Days: 2, Hours: 1, Minutes: 30, Seconds: 15},
		},
		{
			"seconds only",
			now.Add(59 * time.Second),
			Countdown{Seconds: 59},
		},
		{
			"zero",
			now,
			Countdown{},
		},
		{
			"exact day",
			now.Add(24 * time.Hour),
			Countdown{Days: 1},
		},
		{
			"sub-second truncates down",
			now.Add(900 * time.Millisecond),
			Countdown{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCountdown(tt.target, now)
			if got != tt.want {
				t.Errorf("FormatCountdown() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatCountdownComponentsSumToTotal(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, d := range []time.Duration{
		time.Second,
		90 * time.Minute,
		26*time.Hour + 3*time.Second,
		100*24*time.Hour + 59*time.Second,
	} {
		got := FormatCountdown(now.Add(d), now)
		total := got.Days*86400 + got.Hours*3600 + got.Minutes*60 + got.Seconds
		if total != int64(d/time.Second) {
			t.Errorf("components of %v sum to %d seconds, want %d", d, total, int64(d/time.Second))
		}
	}
}

func TestFormatCountdownPastTargetNotClamped(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	got := FormatCountdown(now.Add(-2*time.Hour), now)

	// The decomposition floors toward negative infinity rather than
	// clamping; expiry detection is the clock's job.
	total := got.Days*86400 + got.Hours*3600 + got.Minutes*60 + got.Seconds
	if total != -7200 {
		t.Errorf("components sum to %d seconds, want -7200", total)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{6, 3, 2},
		{-6, 3, -2},
		{0, 5, 0},
	}

	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
