// Package availability implements the wall-clock window algebra used by the
// booking engine: effective-hour resolution, offline-gap detection, placement
// checks and crossover pricing. All functions are pure; clock strings are
// "HH:MM" or "HH:MM:SS" and are anchored to a calendar date in the creator's
// timezone only when a comparison needs real timestamps.
package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ClockWindow is a wall-clock interval within a day. End may be earlier than
// Start, which means the window wraps past midnight into the next day.
type ClockWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const dateLayout = "2006-01-02"

// ParseClockOn anchors a clock string to a calendar date in the given
// location. Seconds are optional in the clock string.
func ParseClockOn(date, clock string, loc *time.Location) (time.Time, error) {
	if len(clock) == 5 {
		clock += ":00"
	}

	t, err := time.ParseInLocation(dateLayout+" 15:04:05", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing clock %q on %q", clock, date)
	}

	return t, nil
}

// clockSeconds converts a clock string to seconds since midnight. Malformed
// components count as zero; inputs are validated at the transport layer.
func clockSeconds(clock string) int {
	parts := strings.SplitN(clock, ":", 3)

	total := 0
	unit := 3600
	for _, part := range parts {
		n, _ := strconv.Atoi(part)
		total += n * unit
		unit /= 60
	}

	return total
}

func formatClockMinute(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}

// ResolveEffectiveHours normalizes the after-hours and default working-hours
// windows into a sorted, merged list of bookable windows. A window whose end
// precedes its start is split at midnight into two segments. Adjacent or
// overlapping windows collapse into one; a merged window's end is reformatted
// to minute precision.
//
// A literal "00:20" end is read as "00:00". Upstream stored that value to mean
// "midnight" and the data was never backfilled.
func ResolveEffectiveHours(defaultHours, afterHours ClockWindow) []ClockWindow {
	raw := make([]ClockWindow, 0, 4)

	for _, w := range []ClockWindow{afterHours, defaultHours} {
		end := w.End
		if end == "00:20" {
			end = "00:00"
		}

		if clockSeconds(w.End) < clockSeconds(w.Start) {
			raw = append(raw,
				ClockWindow{Start: w.Start, End: "23:59:59"},
				ClockWindow{Start: "00:00:00", End: w.End},
			)
		} else {
			raw = append(raw, ClockWindow{Start: w.Start, End: end})
		}
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return clockSeconds(raw[i].Start) < clockSeconds(raw[j].Start)
	})

	merged := make([]ClockWindow, 0, len(raw))
	current := raw[0]

	for _, next := range raw[1:] {
		currentEnd := clockSeconds(current.End)
		if currentEnd >= clockSeconds(next.Start) {
			nextEnd := clockSeconds(next.End)
			if nextEnd > currentEnd {
				currentEnd = nextEnd
			}
			current.End = formatClockMinute(currentEnd)
		} else {
			merged = append(merged, current)
			current = next
		}
	}

	return append(merged, current)
}

// OfflineHours returns the two gaps a creator is unbookable in: between the
// end of working hours and the start of after-hours, and between the end of
// after-hours and the next day's working hours.
func OfflineHours(defaultHours, afterHours ClockWindow) []ClockWindow {
	return []ClockWindow{
		{Start: defaultHours.End, End: afterHours.Start},
		{Start: afterHours.End, End: defaultHours.Start},
	}
}

// WithinOfflineHours reports whether either endpoint of the requested booking
// falls strictly inside an offline gap on the given date. Gaps that cross
// midnight are extended into the next day; the booking's own endpoints are
// taken at face value on the booking date.
func WithinOfflineHours(date, bookingStart, bookingEnd string, defaultHours, afterHours ClockWindow, loc *time.Location) (bool, error) {
	startTs, err := ParseClockOn(date, bookingStart, loc)
	if err != nil {
		return false, err
	}

	endTs, err := ParseClockOn(date, bookingEnd, loc)
	if err != nil {
		return false, err
	}

	for _, gap := range OfflineHours(defaultHours, afterHours) {
		gapStart, err := ParseClockOn(date, gap.Start, loc)
		if err != nil {
			return false, err
		}

		gapEnd, err := ParseClockOn(date, gap.End, loc)
		if err != nil {
			return false, err
		}

		if gapEnd.Before(gapStart) {
			gapEnd = gapEnd.Add(24 * time.Hour)
		}

		startInside := startTs.After(gapStart) && startTs.Before(gapEnd)
		endInside := endTs.After(gapStart) && endTs.Before(gapEnd)

		if startInside || endInside {
			return true, nil
		}
	}

	return false, nil
}

// WithinEffectiveWindows samples the requested interval minute by minute,
// start inclusive and end exclusive, and reports whether every sample lands
// inside at least one effective window. Each window is re-anchored to the
// sample's own date so wrapping windows keep covering intervals that cross
// midnight. When end is at or before start there are no samples and the
// result is vacuously true; callers must normalize overnight intervals
// before the check, with duration validation and the conflict test guarding
// that case.
func WithinEffectiveWindows(start, end time.Time, windows []ClockWindow, loc *time.Location) (bool, error) {
	for ts := start; ts.Before(end); ts = ts.Add(time.Minute) {
		inside, err := coveredByAny(ts, windows, loc)
		if err != nil {
			return false, err
		}
		if !inside {
			return false, nil
		}
	}

	return true, nil
}

func coveredByAny(ts time.Time, windows []ClockWindow, loc *time.Location) (bool, error) {
	date := ts.In(loc).Format(dateLayout)

	for _, w := range windows {
		winStart, err := ParseClockOn(date, w.Start, loc)
		if err != nil {
			return false, err
		}

		winEnd, err := ParseClockOn(date, w.End, loc)
		if err != nil {
			return false, err
		}

		if winEnd.Before(winStart) {
			winEnd = winEnd.Add(24 * time.Hour)
		}

		if !ts.Before(winStart) && !ts.After(winEnd) {
			return true, nil
		}
	}

	return false, nil
}
