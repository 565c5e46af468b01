package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fancall/internal/domains/availability"
)

func TestValidDuration(t *testing.T) {
	parse := func(t *testing.T, value string) time.Time {
		t.Helper()
		ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
		require.NoError(t, err)
		return ts
	}

	tests := []struct {
		name       string
		start      string
		end        string
		minMinutes int
		maxMinutes int
		expected   bool
	}{
		{
			name:       "duration inside the allowed range",
			start:      "2025-07-10 20:00",
			end:        "2025-07-10 21:00",
			minMinutes: 30,
			maxMinutes: 120,
			expected:   true,
		},
		{
			name:       "duration below the minimum",
			start:      "2025-07-10 20:00",
			end:        "2025-07-10 21:00",
			minMinutes: 100,
			maxMinutes: 999,
			expected:   false,
		},
		{
			name:       "duration above the maximum",
			start:      "2025-07-10 08:00",
			end:        "2025-07-10 20:00",
			minMinutes: 30,
			maxMinutes: 120,
			expected:   false,
		},
		{
			name:       "overnight booking rolls the end into the next day",
			start:      "2025-07-10 23:00",
			end:        "2025-07-10 01:00",
			minMinutes: 60,
			maxMinutes: 180,
			expected:   true,
		},
		{
			name:       "unset limits reject every duration",
			start:      "2025-07-10 09:00",
			end:        "2025-07-10 10:00",
			minMinutes: 0,
			maxMinutes: 0,
			expected:   false,
		},
		{
			name:       "missing maximum rejects the booking",
			start:      "2025-07-10 09:00",
			end:        "2025-07-10 10:00",
			minMinutes: 30,
			maxMinutes: 0,
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availability.ValidDuration(parse(t, tt.start), parse(t, tt.end), tt.minMinutes, tt.maxMinutes)
			assert.Equal(t, tt.expected, got)
		})
	}
}
