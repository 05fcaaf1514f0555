package schedule

import (
	"context"
	"log/slog"
	"math"

	"github.com/classtrack/classtrack/store"
)

// LoadSummary is a teacher's aggregated teaching load.
type LoadSummary struct {
	// DailyHours is the busiest single day, kept for display.
	DailyHours float64 `json:"dailyHours"`
	// WeeklyHours is the sum over all seven days.
	WeeklyHours    float64                    `json:"weeklyHours"`
	DailyBreakdown map[store.Weekday]float64 `json:"dailyBreakdown"`
	// Degraded marks a summary that fell back to zero because a lookup
	// failed mid-aggregation. Load checks never block on transient read
	// errors; monitoring can still tell the two states apart.
	Degraded bool `json:"degraded,omitempty"`
}

func zeroLoadSummary() *LoadSummary {
	breakdown := make(map[store.Weekday]float64, len(store.Weekdays))
	for _, day := range store.Weekdays {
		breakdown[day] = 0
	}
	return &LoadSummary{DailyBreakdown: breakdown}
}

// AggregateLoad recomputes the per-day and per-week teaching hours for a
// teacher from every schedule entry referencing one of the teacher's
// subjects. A teacher with no subjects gets an all-zero summary. Lookup
// errors degrade to the all-zero summary rather than propagating.
func (s *service) AggregateLoad(ctx context.Context, teacherID int32) (*LoadSummary, error) {
	subjects, err := s.store.ListSubjects(ctx, &store.FindSubject{TeacherID: &teacherID})
	if err != nil {
		slog.Error("failed to list subjects for load aggregation, degrading to zero load", "teacher", teacherID, "err", err)
		summary := zeroLoadSummary()
		summary.Degraded = true
		return summary, nil
	}
	if len(subjects) == 0 {
		return zeroLoadSummary(), nil
	}

	subjectIDs := make([]int32, 0, len(subjects))
	taught := make(map[int32]bool, len(subjects))
	for _, subject := range subjects {
		subjectIDs = append(subjectIDs, subject.ID)
		taught[subject.ID] = true
	}

	schedules, err := s.store.ListSchedules(ctx, &store.FindSchedule{SubjectIDs: subjectIDs})
	if err != nil {
		slog.Error("failed to list schedules for load aggregation, degrading to zero load", "teacher", teacherID, "err", err)
		summary := zeroLoadSummary()
		summary.Degraded = true
		return summary, nil
	}

	summary := zeroLoadSummary()
	for _, sched := range schedules {
		for _, entry := range sched.Entries {
			if !taught[entry.SubjectID] {
				continue
			}
			duration := HoursBetween(entry.StartTime, entry.EndTime)
			summary.DailyBreakdown[entry.Day] += duration.Hours
			summary.WeeklyHours += duration.Hours
		}
	}
	for day, hours := range summary.DailyBreakdown {
		rounded := round2(hours)
		summary.DailyBreakdown[day] = rounded
		if rounded > summary.DailyHours {
			summary.DailyHours = rounded
		}
	}
	summary.WeeklyHours = round2(summary.WeeklyHours)
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
