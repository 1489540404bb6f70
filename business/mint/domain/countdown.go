package domain

import "time"

// Millisecond spans of each countdown unit.
const (
	msPerSecond int64 = 1000
	msPerMinute       = 60 * msPerSecond
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
)

// Countdown is a duration decomposed for display.
type Countdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// FormatCountdown decomposes target minus now by successive floor
// division. The result is not clamped: once target has passed, the
// components go negative and the caller decides when to re-resolve.
func FormatCountdown(target, now time.Time) Countdown {
	msec := target.Sub(now).Milliseconds()

	days := floorDiv(msec, msPerDay)
	msec -= days * msPerDay
	hours := floorDiv(msec, msPerHour)
	msec -= hours * msPerHour
	minutes := floorDiv(msec, msPerMinute)
	msec -= minutes * msPerMinute
	seconds := floorDiv(msec, msPerSecond)

	return Countdown{
		Days:    days,
		Hours:   hours,
		Minutes: minutes,
		Seconds: seconds,
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
