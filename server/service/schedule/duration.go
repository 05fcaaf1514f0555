package schedule

import (
	"log/slog"
)

// FallbackDurationHours is assumed for an entry whose start or end time
// cannot be parsed. Existing data contains malformed time strings, so a
// parse failure degrades to this default instead of blocking the caller.
const FallbackDurationHours = 1.0

// Duration is the elapsed time between two time-of-day strings. Fallback
// marks a value that was substituted after a parse failure, so callers can
// tell a recovered default from a legitimate one-hour entry.
type Duration struct {
	Hours    float64
	Fallback bool
	Reason   string
}

// HoursBetween computes the hours between two time-of-day strings. A
// negative difference is interpreted as crossing midnight, so 11 PM to
// 1 AM is two hours. When either bound fails to parse the result falls
// back to FallbackDurationHours and the problem is logged.
func HoursBetween(start, end string) Duration {
	startHour, err := ParseTimeOfDay(start)
	if err != nil {
		slog.Warn("unparseable start time, assuming fallback duration", "start", start, "err", err)
		return Duration{Hours: FallbackDurationHours, Fallback: true, Reason: err.Error()}
	}
	endHour, err := ParseTimeOfDay(end)
	if err != nil {
		slog.Warn("unparseable end time, assuming fallback duration", "end", end, "err", err)
		return Duration{Hours: FallbackDurationHours, Fallback: true, Reason: err.Error()}
	}

	hours := endHour - startHour
	if hours < 0 {
		hours += 24
	}
	return Duration{Hours: hours}
}
