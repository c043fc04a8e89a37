// Package interval provides the validity-interval algebra used to keep
// versions of the same type definition from coexisting. Intervals are
// inclusive on both ends; a nil end date means the interval runs open-ended
// into the future.
package interval

import "time"

// Interval is a validity window over dates.
type Interval struct {
	Begin time.Time
	End   *time.Time
}

// Overlaps reports whether two intervals share at least one day:
// a.begin <= (b.end or +inf) and b.begin <= (a.end or +inf).
func (iv Interval) Overlaps(other Interval) bool {
	return !beginsAfter(iv.Begin, other.End) && !beginsAfter(other.Begin, iv.End)
}

// Contains reports whether the date falls inside the interval.
func (iv Interval) Contains(d time.Time) bool {
	if d.Before(iv.Begin) {
		return false
	}
	return iv.End == nil || !d.After(*iv.End)
}

func beginsAfter(begin time.Time, end *time.Time) bool {
	if end == nil {
		return false
	}
	return begin.After(*end)
}
