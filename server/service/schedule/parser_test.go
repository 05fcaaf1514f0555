package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"7:00 AM", 7.0},
		{"7:00 PM", 19.0},
		{"12:00 AM", 0.0},
		{"12:00 PM", 12.0},
		{"12:30 PM", 12.5},
		{"7:15 AM", 7.25},
		{"18:00", 18.0},
		{"0:00", 0.0},
		{"9", 9.0},
		{"  8:00 am  ", 8.0},
		// Packed range form, only the start is used.
		{"7:00-8:30", 7.0},
		{"7:00 AM-8:30 AM", 7.0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"garbage",
		// 24-hour values are only valid without a meridiem marker.
		"13:00 PM",
		"18:00 PM",
		"25:00",
		"7:60",
		"7:-1",
		"seven:00",
		"7:xx",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeOfDay(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTimeFormat))
		})
	}
}
