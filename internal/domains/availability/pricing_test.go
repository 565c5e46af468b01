package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fancall/internal/domains/availability"
)

func TestComputeCrossover(t *testing.T) {
	tests := []struct {
		name         string
		date         string
		start        string
		end          string
		defaultHours availability.ClockWindow
		afterHours   availability.ClockWindow
		expected     availability.Crossover
	}{
		{
			name:         "fully inside working hours",
			date:         "2025-07-10",
			start:        "09:00",
			end:          "10:30",
			defaultHours: availability.ClockWindow{Start: "08:00", End: "16:00"},
			afterHours:   availability.ClockWindow{Start: "17:00", End: "23:00"},
			expected: availability.Crossover{
				CrossOver:        false,
				MinutesInDefault: 90,
			},
		},
		{
			name:         "fully inside after hours",
			date:         "2025-07-10",
			start:        "20:00",
			end:          "21:00",
			defaultHours: availability.ClockWindow{Start: "08:00", End: "10:00"},
			afterHours:   availability.ClockWindow{Start: "20:00", End: "21:00"},
			expected: availability.Crossover{
				CrossOver:           false,
				MinutesInAfterHours: 60,
			},
		},
		{
			name:         "straddling the working hours end splits between buckets",
			date:         "2025-07-10",
			start:        "15:00",
			end:          "17:00",
			defaultHours: availability.ClockWindow{Start: "08:00", End: "16:00"},
			afterHours:   availability.ClockWindow{Start: "16:00", End: "22:00"},
			expected: availability.Crossover{
				CrossOver:           true,
				MinutesInDefault:    60,
				MinutesInAfterHours: 60,
			},
		},
		{
			name:         "touching an offline gap yields an empty allocation",
			date:         "2025-07-10",
			start:        "07:30",
			end:          "12:30",
			defaultHours: availability.ClockWindow{Start: "08:00", End: "10:00"},
			afterHours:   availability.ClockWindow{Start: "20:00", End: "21:00"},
			expected:     availability.Crossover{},
		},
		{
			name:         "early morning start bills against the wrapped after hours on the next date",
			date:         "2025-07-10",
			start:        "01:00",
			end:          "01:30",
			defaultHours: availability.ClockWindow{Start: "09:00", End: "17:00"},
			afterHours:   availability.ClockWindow{Start: "18:00", End: "02:00"},
			expected: availability.Crossover{
				CrossOver:           false,
				MinutesInAfterHours: 30,
			},
		},
		{
			name:         "appointment spanning exactly the offline gap bills as after hours",
			date:         "2025-07-10",
			start:        "16:00",
			end:          "17:00",
			defaultHours: availability.ClockWindow{Start: "08:00", End: "16:00"},
			afterHours:   availability.ClockWindow{Start: "17:00", End: "23:00"},
			expected: availability.Crossover{
				CrossOver:           false,
				MinutesInAfterHours: 60,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := availability.ComputeCrossover(tt.date, tt.start, tt.end, tt.defaultHours, tt.afterHours, time.UTC)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculatePrice(t *testing.T) {
	crossover := availability.Crossover{
		CrossOver:           true,
		MinutesInDefault:    60,
		MinutesInAfterHours: 30,
	}

	breakdown := availability.CalculatePrice(crossover, 2, 5)

	assert.Equal(t, availability.PriceBreakdown{
		TotalPrice:        270,
		RegularMinutes:    60,
		AfterHoursMinutes: 30,
		RegularPrice:      120,
		SurchargePrice:    150,
	}, breakdown)
}

func TestCalculatePriceEmptyAllocation(t *testing.T) {
	breakdown := availability.CalculatePrice(availability.Crossover{}, 2, 5)

	assert.Zero(t, breakdown.TotalPrice)
	assert.Zero(t, breakdown.RegularPrice)
	assert.Zero(t, breakdown.SurchargePrice)
}
