package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a time-of-day string cannot be
// parsed. Check with errors.Is.
var ErrInvalidTimeFormat = fmt.Errorf("invalid time format")

// ParseTimeOfDay converts a loosely formatted time-of-day string into a
// fractional hour in [0, 24). Accepted forms are "H:MM", "H:MM AM/PM" and
// the packed range form "H:MM-H:MM", of which only the start is used.
// Input without a meridiem marker is treated as already 24-hour.
func ParseTimeOfDay(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidTimeFormat)
	}

	// A packed "start-end" range; only the start matters here.
	if idx := strings.Index(s, "-"); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}

	lower := strings.ToLower(s)
	isPM := strings.Contains(lower, "pm")
	isAM := strings.Contains(lower, "am")
	if isAM || isPM {
		lower = strings.ReplaceAll(lower, "pm", "")
		lower = strings.ReplaceAll(lower, "am", "")
		s = strings.TrimSpace(lower)
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, fmt.Errorf("%w: %q has a non-numeric hour", ErrInvalidTimeFormat, raw)
	}
	minutes := 0
	if hasMinutes {
		minutes, err = strconv.Atoi(strings.TrimSpace(minutePart))
		if err != nil {
			return 0, fmt.Errorf("%w: %q has non-numeric minutes", ErrInvalidTimeFormat, raw)
		}
	}

	if minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("%w: %q has minutes outside [0,60)", ErrInvalidTimeFormat, raw)
	}
	if isAM || isPM {
		// A meridiem marker implies a 12-hour clock, so "13:00 PM" is invalid.
		if hour < 0 || hour > 12 {
			return 0, fmt.Errorf("%w: %q has hour outside [0,12] with a meridiem marker", ErrInvalidTimeFormat, raw)
		}
		if isPM && hour != 12 {
			hour += 12
		}
		if isAM && hour == 12 {
			hour = 0
		}
	} else if hour < 0 || hour >= 24 {
		return 0, fmt.Errorf("%w: %q has hour outside [0,24)", ErrInvalidTimeFormat, raw)
	}

	return float64(hour) + float64(minutes)/60, nil
}
