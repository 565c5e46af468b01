package availability

import "time"

// ValidDuration reports whether the interval between start and end fits the
// creator's minimum/maximum booking length. An end at or before the start is
// treated as rolling into the next day. Unset or zero limits reject every
// duration, as does a zero-length interval.
func ValidDuration(start, end time.Time, minMinutes, maxMinutes int) bool {
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	if minMinutes <= 0 || maxMinutes <= 0 {
		return false
	}

	duration := int(end.Sub(start).Minutes())
	if duration == 0 {
		return false
	}

	return duration >= minMinutes && duration <= maxMinutes
}
