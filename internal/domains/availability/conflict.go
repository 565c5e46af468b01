package availability

import (
	"sort"
	"time"
)

// Interval is a concrete occupied span used for conflict checks and free-slot
// sweeps.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ConflictsWithBuffer reports whether the requested interval collides with an
// existing booking once the buffer is applied on both sides of the existing
// one. An existing end at or before its start rolls into the next day.
func ConflictsWithBuffer(requested, existing Interval, buffer time.Duration) bool {
	existingEnd := existing.End
	if !existingEnd.After(existing.Start) {
		existingEnd = existingEnd.Add(24 * time.Hour)
	}

	return requested.Start.Before(existingEnd.Add(buffer)) &&
		requested.End.After(existing.Start.Add(-buffer))
}

// FreeSlots sweeps the booked intervals between rangeStart and rangeEnd and
// returns the gaps still open, with the buffer padded around every booking.
// Bookings are sorted by start before the sweep; a trailing gap after the last
// booking is included when it fits inside the range.
func FreeSlots(rangeStart, rangeEnd time.Time, booked []Interval, buffer time.Duration) []Interval {
	sorted := make([]Interval, len(booked))
	copy(sorted, booked)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	windows := make([]Interval, 0, len(sorted)+1)
	current := rangeStart

	for _, b := range sorted {
		adjustedStart := b.Start.Add(-buffer)
		adjustedEnd := b.End.Add(buffer)

		if current.Before(adjustedStart) {
			windowEnd := adjustedStart
			if rangeEnd.Before(windowEnd) {
				windowEnd = rangeEnd
			}
			windows = append(windows, Interval{Start: current, End: windowEnd})
		}

		if adjustedEnd.After(current) {
			current = adjustedEnd
		}
	}

	if current.Before(rangeEnd) {
		windows = append(windows, Interval{Start: current, End: rangeEnd})
	}

	return windows
}
