// Package schedule implements the teaching-load calculator and the guarded
// schedule mutations built on top of it.
//
// Key behaviors:
//   - Free-form time strings are parsed with 12-hour/24-hour disambiguation
//     and cross-midnight duration handling.
//   - Every schedule mutation is validated against the affected teachers'
//     weekly load cap before anything is written; a single over-cap teacher
//     rejects the whole batch.
//   - After a committed mutation the affected teachers' cached weekly load
//     is recomputed and persisted; a failure there is logged, not surfaced,
//     since the schedule write has already succeeded.
//
// The service layer abstracts business logic from the store layer and
// provides a clean interface for upper layers.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"

	"github.com/classtrack/classtrack/server/internal/observability"
	"github.com/classtrack/classtrack/store"
)

// Schedule-specific errors that can be checked with errors.Is.
var (
	// ErrScheduleExists is returned when creating a schedule for a section
	// that already has one.
	ErrScheduleExists = fmt.Errorf("section already has a schedule")
	// ErrScheduleNotFound is returned when the section has no schedule.
	ErrScheduleNotFound = fmt.Errorf("schedule not found")
	// ErrEntryNotFound is returned when an entry position is out of range.
	ErrEntryNotFound = fmt.Errorf("schedule entry not found")
	// ErrSubjectNotFound is returned when an entry references an unknown subject.
	ErrSubjectNotFound = fmt.Errorf("subject not found")
	// ErrInvalidEntry is returned when an entry fails basic validation.
	ErrInvalidEntry = fmt.Errorf("invalid schedule entry")
)

// CapError is the structured rejection for a mutation that would push a
// teacher over the weekly cap. The message names the teacher so the API
// layer can surface it verbatim.
type CapError struct {
	TeacherID   int32
	TeacherName string
	Decision    *Decision
}

func (e *CapError) Error() string {
	name := e.TeacherName
	if name == "" {
		name = "Teacher"
	}
	return fmt.Sprintf("%s: %s", name, e.Decision.Message)
}

// Store is the interface for store operations needed by the schedule service.
type Store interface {
	ListTeachers(ctx context.Context, find *store.FindTeacher) ([]*store.Teacher, error)
	UpdateTeacher(ctx context.Context, update *store.UpdateTeacher) (*store.Teacher, error)
	ListSubjects(ctx context.Context, find *store.FindSubject) ([]*store.Subject, error)
	ListSchedules(ctx context.Context, find *store.FindSchedule) ([]*store.Schedule, error)
	GetSchedule(ctx context.Context, find *store.FindSchedule) (*store.Schedule, error)
	CreateSchedule(ctx context.Context, create *store.Schedule) (*store.Schedule, error)
	UpdateSchedule(ctx context.Context, update *store.UpdateSchedule) (*store.Schedule, error)
	DeleteSchedule(ctx context.Context, delete *store.DeleteSchedule) error
}

type service struct {
	store Store
	cap   float64
	locks teacherLocks
}

// NewService creates a schedule service enforcing the given weekly cap.
func NewService(st Store, cap float64) Service {
	return &service{
		store: st,
		cap:   cap,
		locks: teacherLocks{byID: map[int32]*sync.Mutex{}},
	}
}

func (s *service) ScheduleBySection(ctx context.Context, sectionID int32) (*store.Schedule, error) {
	sched, err := s.store.GetSchedule(ctx, &store.FindSchedule{SectionID: &sectionID})
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return sched, nil
}

func (s *service) CreateSchedule(ctx context.Context, sectionID int32, entries []*store.ScheduleEntry) (*store.Schedule, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	existing, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrScheduleExists
	}

	proposed, err := s.proposedHoursByTeacher(ctx, entries)
	if err != nil {
		return nil, err
	}
	affected := teacherIDs(proposed)
	unlock := s.locks.lockAll(affected)
	defer unlock()

	if err := s.checkTeachers(ctx, proposed); err != nil {
		return nil, err
	}

	created, err := s.store.CreateSchedule(ctx, &store.Schedule{
		UID:       shortuuid.New(),
		SectionID: sectionID,
		Entries:   entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return created, nil
}

func (s *service) AddEntry(ctx context.Context, sectionID int32, entry *store.ScheduleEntry) (*store.Schedule, error) {
	if err := validateEntries([]*store.ScheduleEntry{entry}); err != nil {
		return nil, err
	}
	sched, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}

	proposed, err := s.proposedHoursByTeacher(ctx, []*store.ScheduleEntry{entry})
	if err != nil {
		return nil, err
	}
	affected := teacherIDs(proposed)
	unlock := s.locks.lockAll(affected)
	defer unlock()

	if err := s.checkTeachers(ctx, proposed); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSchedule(ctx, &store.UpdateSchedule{
		ID:      sched.ID,
		Entries: append(sched.Entries, entry),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return updated, nil
}

func (s *service) UpdateEntry(ctx context.Context, sectionID int32, position int32, entry *store.ScheduleEntry) (*store.Schedule, error) {
	if err := validateEntries([]*store.ScheduleEntry{entry}); err != nil {
		return nil, err
	}
	sched, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}
	if position < 0 || int(position) >= len(sched.Entries) {
		return nil, ErrEntryNotFound
	}
	old := sched.Entries[position]

	proposed, err := s.proposedHoursByTeacher(ctx, []*store.ScheduleEntry{entry})
	if err != nil {
		return nil, err
	}
	// Reductions must be reflected too, so the sync set spans the old and
	// the new entry's teachers.
	affected, err := s.unionWithTeachersOf(ctx, teacherIDs(proposed), []*store.ScheduleEntry{old})
	if err != nil {
		return nil, err
	}
	unlock := s.locks.lockAll(affected)
	defer unlock()

	if err := s.checkTeachers(ctx, proposed); err != nil {
		return nil, err
	}

	entries := make([]*store.ScheduleEntry, len(sched.Entries))
	copy(entries, sched.Entries)
	entries[position] = entry
	updated, err := s.store.UpdateSchedule(ctx, &store.UpdateSchedule{
		ID:      sched.ID,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return updated, nil
}

func (s *service) RemoveEntry(ctx context.Context, sectionID int32, position int32) (*store.Schedule, error) {
	sched, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}
	if position < 0 || int(position) >= len(sched.Entries) {
		return nil, ErrEntryNotFound
	}
	old := sched.Entries[position]

	// Removing hours can never breach the cap; only the sync step matters.
	affected, err := s.unionWithTeachersOf(ctx, nil, []*store.ScheduleEntry{old})
	if err != nil {
		return nil, err
	}
	unlock := s.locks.lockAll(affected)
	defer unlock()

	entries := make([]*store.ScheduleEntry, 0, len(sched.Entries)-1)
	entries = append(entries, sched.Entries[:position]...)
	entries = append(entries, sched.Entries[position+1:]...)
	updated, err := s.store.UpdateSchedule(ctx, &store.UpdateSchedule{
		ID:      sched.ID,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return updated, nil
}

func (s *service) ReplaceEntries(ctx context.Context, sectionID int32, entries []*store.ScheduleEntry) (*store.Schedule, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	sched, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}

	proposed, err := s.proposedHoursByTeacher(ctx, entries)
	if err != nil {
		return nil, err
	}
	affected, err := s.unionWithTeachersOf(ctx, teacherIDs(proposed), sched.Entries)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.lockAll(affected)
	defer unlock()

	if err := s.checkTeachers(ctx, proposed); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*store.ScheduleEntry{}
	}
	updated, err := s.store.UpdateSchedule(ctx, &store.UpdateSchedule{
		ID:      sched.ID,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return updated, nil
}

func (s *service) DeleteSchedule(ctx context.Context, sectionID int32) error {
	sched, err := s.ScheduleBySection(ctx, sectionID)
	if err != nil {
		return err
	}
	if sched == nil {
		return ErrScheduleNotFound
	}

	affected, err := s.unionWithTeachersOf(ctx, nil, sched.Entries)
	if err != nil {
		return err
	}
	unlock := s.locks.lockAll(affected)
	defer unlock()

	if err := s.store.DeleteSchedule(ctx, &store.DeleteSchedule{ID: sched.ID}); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	s.syncTeachingLoad(ctx, affected)
	return nil
}

func validateEntries(entries []*store.ScheduleEntry) error {
	for _, entry := range entries {
		if entry.SubjectID <= 0 {
			return fmt.Errorf("%w: missing subject", ErrInvalidEntry)
		}
		if !entry.Day.IsValid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidEntry, entry.Day)
		}
		if entry.StartTime == "" || entry.EndTime == "" {
			return fmt.Errorf("%w: missing start or end time", ErrInvalidEntry)
		}
	}
	return nil
}

// proposedHoursByTeacher resolves each proposed entry's subject to its
// teachers and sums the proposed hours per teacher. A teacher co-teaching
// several affected subjects appears once, with the combined total.
func (s *service) proposedHoursByTeacher(ctx context.Context, entries []*store.ScheduleEntry) (map[int32]float64, error) {
	if len(entries) == 0 {
		return map[int32]float64{}, nil
	}

	teachersBySubject, err := s.teachersBySubject(ctx, entries)
	if err != nil {
		return nil, err
	}

	proposed := make(map[int32]float64)
	for _, entry := range entries {
		teachers, ok := teachersBySubject[entry.SubjectID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrSubjectNotFound, entry.SubjectID)
		}
		duration := HoursBetween(entry.StartTime, entry.EndTime)
		for _, teacherID := range teachers {
			proposed[teacherID] += duration.Hours
		}
	}
	return proposed, nil
}

func (s *service) teachersBySubject(ctx context.Context, entries []*store.ScheduleEntry) (map[int32][]int32, error) {
	seen := make(map[int32]bool)
	subjectIDs := make([]int32, 0, len(entries))
	for _, entry := range entries {
		if !seen[entry.SubjectID] {
			seen[entry.SubjectID] = true
			subjectIDs = append(subjectIDs, entry.SubjectID)
		}
	}
	if len(subjectIDs) == 0 {
		return map[int32][]int32{}, nil
	}

	subjects, err := s.store.ListSubjects(ctx, &store.FindSubject{IDs: subjectIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	teachersBySubject := make(map[int32][]int32, len(subjects))
	for _, subject := range subjects {
		teachersBySubject[subject.ID] = subject.TeacherIDs
	}
	return teachersBySubject, nil
}

// checkTeachers runs the cap check once per affected teacher. The first
// failing teacher rejects the whole batch.
func (s *service) checkTeachers(ctx context.Context, proposed map[int32]float64) error {
	if len(proposed) == 0 {
		return nil
	}

	ids := teacherIDs(proposed)
	names := make(map[int32]string, len(ids))
	teachers, err := s.store.ListTeachers(ctx, &store.FindTeacher{IDs: ids})
	if err != nil {
		// Names only decorate the rejection message; the check proceeds.
		slog.Warn("failed to resolve teacher names for load check", "err", err)
	} else {
		for _, teacher := range teachers {
			names[teacher.ID] = teacher.Name
		}
	}

	for _, teacherID := range ids {
		decision, err := s.CanAssign(ctx, teacherID, proposed[teacherID])
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return &CapError{
				TeacherID:   teacherID,
				TeacherName: names[teacherID],
				Decision:    decision,
			}
		}
	}
	return nil
}

// unionWithTeachersOf extends a teacher ID set with the teachers of the
// given entries' subjects, returning a sorted slice.
func (s *service) unionWithTeachersOf(ctx context.Context, base []int32, entries []*store.ScheduleEntry) ([]int32, error) {
	set := make(map[int32]bool, len(base))
	for _, id := range base {
		set[id] = true
	}

	teachersBySubject, err := s.teachersBySubject(ctx, entries)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		for _, teacherID := range teachersBySubject[entry.SubjectID] {
			set[teacherID] = true
		}
	}

	ids := make([]int32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sortTeacherIDs(ids)
	return ids, nil
}

// syncTeachingLoad recomputes and persists the cached weekly load for each
// affected teacher after a committed mutation. The schedule write has
// already succeeded, so failures here are logged, never surfaced.
func (s *service) syncTeachingLoad(ctx context.Context, teacherIDs []int32) {
	g, ctx := errgroup.WithContext(ctx)
	for _, teacherID := range teacherIDs {
		g.Go(func() error {
			summary, err := s.AggregateLoad(ctx, teacherID)
			if err != nil {
				return fmt.Errorf("failed to aggregate load for teacher %d: %w", teacherID, err)
			}
			if summary.Degraded {
				// Zero here means a read failure, not zero load; keep the
				// previous cached figure instead of clobbering it.
				slog.Warn("skipping teaching load sync for degraded summary", "teacher", teacherID)
				return nil
			}
			if _, err := s.store.UpdateTeacher(ctx, &store.UpdateTeacher{
				ID:         teacherID,
				WeeklyLoad: &summary.WeeklyHours,
			}); err != nil {
				return fmt.Errorf("failed to persist load for teacher %d: %w", teacherID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.GlobalMetrics().RecordLoadSyncError()
		slog.Error("failed to sync teaching load after schedule mutation", "err", err)
	}
}

func teacherIDs(proposed map[int32]float64) []int32 {
	ids := make([]int32, 0, len(proposed))
	for id := range proposed {
		ids = append(ids, id)
	}
	sortTeacherIDs(ids)
	return ids
}

func sortTeacherIDs(ids []int32) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
