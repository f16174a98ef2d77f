package meeting

import "time"

// within reports whether t lies in [start, end], closed at both ends.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// HasConflict reports whether the candidate [start, end] interval overlaps
// any of the existing meetings. The test is symmetric and closed at both
// ends: a meeting ending at 10:00 conflicts with one starting at 10:00.
// Abutting bookings are a conflict on purpose; the calendar treats the
// boundary minute as occupied.
func HasConflict(start, end time.Time, existing []Meeting) bool {
	for _, m := range existing {
		if within(start, m.StartTime, m.EndTime) ||
			within(end, m.StartTime, m.EndTime) ||
			within(m.StartTime, start, end) ||
			within(m.EndTime, start, end) {
			return true
		}
	}
	return false
}
