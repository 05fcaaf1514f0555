package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"simple morning range", "7:00 AM", "8:30 AM", 1.5},
		{"midnight crossing", "11:00 PM", "1:00 AM", 2.0},
		{"24-hour input", "8:00", "15:00", 7.0},
		{"zero length", "9:00 AM", "9:00 AM", 0.0},
		{"afternoon", "1:15 PM", "2:45 PM", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursBetween(tt.start, tt.end)
			assert.False(t, got.Fallback)
			assert.InDelta(t, tt.want, got.Hours, 1e-9)
		})
	}
}

func TestHoursBetweenFallback(t *testing.T) {
	// Malformed bounds degrade to the one hour default instead of failing,
	// and the result is marked so it can be told apart from a real hour.
	got := HoursBetween("garbage", "8:00 AM")
	assert.True(t, got.Fallback)
	assert.NotEmpty(t, got.Reason)
	assert.Equal(t, FallbackDurationHours, got.Hours)

	got = HoursBetween("8:00 AM", "")
	assert.True(t, got.Fallback)
	assert.Equal(t, FallbackDurationHours, got.Hours)
}
