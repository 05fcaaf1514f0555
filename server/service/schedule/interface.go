package schedule

import (
	"context"

	"github.com/classtrack/classtrack/store"
)

// Service is the teaching-load and schedule-mutation interface consumed by
// the API layer. Every schedule-modifying operation is gated behind the
// weekly load cap; reads are side-effect free.
type Service interface {
	// AggregateLoad recomputes a teacher's current per-day and per-week
	// teaching hours from the stored schedules.
	AggregateLoad(ctx context.Context, teacherID int32) (*LoadSummary, error)
	// CanAssign is a dry-run cap check for taking on additional weekly hours.
	CanAssign(ctx context.Context, teacherID int32, additionalHours float64) (*Decision, error)

	// ScheduleBySection returns the section's schedule, nil when absent.
	ScheduleBySection(ctx context.Context, sectionID int32) (*store.Schedule, error)
	// CreateSchedule creates the section's schedule with the given entries.
	CreateSchedule(ctx context.Context, sectionID int32, entries []*store.ScheduleEntry) (*store.Schedule, error)
	// AddEntry appends one entry to the section's schedule.
	AddEntry(ctx context.Context, sectionID int32, entry *store.ScheduleEntry) (*store.Schedule, error)
	// UpdateEntry replaces the entry at the given position.
	UpdateEntry(ctx context.Context, sectionID int32, position int32, entry *store.ScheduleEntry) (*store.Schedule, error)
	// RemoveEntry deletes the entry at the given position.
	RemoveEntry(ctx context.Context, sectionID int32, position int32) (*store.Schedule, error)
	// ReplaceEntries swaps the section's whole entry list.
	ReplaceEntries(ctx context.Context, sectionID int32, entries []*store.ScheduleEntry) (*store.Schedule, error)
	// DeleteSchedule removes the section's schedule entirely.
	DeleteSchedule(ctx context.Context, sectionID int32) error
}
