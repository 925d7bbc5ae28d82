// Package dateutil provides the day-granularity time math the watering
// schedule is built on. All functions are pure.
package dateutil

import "time"

// AddDays returns t shifted by n calendar days.
// AddDate handles DST correctly, Add(n*24h) does not.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// IsBefore reports whether a is strictly before b.
func IsBefore(a, b time.Time) bool {
	return a.Before(b)
}

// IsToday reports whether t falls on the same calendar day as now,
// with each timestamp read in its own location.
func IsToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// DifferenceInDays returns the signed whole-day difference a minus b, computed on
// calendar days rather than elapsed duration: each timestamp is reduced to
// its own calendar day first, so time-of-day never influences the result.
// A due date later today yields 0, yesterday -1, tomorrow +1.
func DifferenceInDays(a, b time.Time) int {
	return int(dayStart(a).Sub(dayStart(b)).Hours() / 24)
}

// dayStart maps t to midnight UTC of t's own calendar day. Anchoring both
// operands this way makes the subtraction an exact multiple of 24h.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
