package store

import (
	"context"
)

// ScheduleEntry is one (subject, day, start, end) tuple inside a section's
// schedule. Start and end times are kept as the free-form strings they were
// entered with; parsing happens in the load service.
type ScheduleEntry struct {
	ID        int32
	SubjectID int32
	Day       Weekday
	StartTime string
	EndTime   string
	// Position is the zero-based index of the entry inside the schedule,
	// used to address single entries for update and removal.
	Position int32
}

// Schedule is the object representing a section's weekly schedule. There is
// at most one schedule per section.
type Schedule struct {
	ID  int32
	UID string

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	SectionID int32
	Entries   []*ScheduleEntry
}

// FindSchedule is the find condition for schedule.
type FindSchedule struct {
	ID        *int32
	UID       *string
	SectionID *int32
	// SubjectIDs filters to schedules containing at least one entry that
	// references any of the given subjects.
	SubjectIDs []int32
}

// UpdateSchedule is the update request for schedule. A non-nil Entries
// replaces the whole entry list; positions are renumbered sequentially.
type UpdateSchedule struct {
	ID int32

	UpdatedTs *int64
	Entries   []*ScheduleEntry
}

// DeleteSchedule is the delete request for schedule.
type DeleteSchedule struct {
	ID int32
}

// CreateSchedule creates a new schedule with its entries.
func (s *Store) CreateSchedule(ctx context.Context, create *Schedule) (*Schedule, error) {
	return s.driver.CreateSchedule(ctx, create)
}

// ListSchedules lists schedules with filter, entries included.
func (s *Store) ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error) {
	return s.driver.ListSchedules(ctx, find)
}

// GetSchedule gets a single schedule with filter, nil when not found.
func (s *Store) GetSchedule(ctx context.Context, find *FindSchedule) (*Schedule, error) {
	list, err := s.driver.ListSchedules(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateSchedule updates a schedule, replacing its entries when given.
func (s *Store) UpdateSchedule(ctx context.Context, update *UpdateSchedule) (*Schedule, error) {
	return s.driver.UpdateSchedule(ctx, update)
}

// DeleteSchedule deletes a schedule and its entries.
func (s *Store) DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error {
	return s.driver.DeleteSchedule(ctx, delete)
}
