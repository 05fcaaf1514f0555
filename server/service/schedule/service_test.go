package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack/store"
)

// mockStore is an in-memory implementation of the Store interface.
type mockStore struct {
	mu        sync.Mutex
	teachers  []*store.Teacher
	subjects  []*store.Subject
	schedules []*store.Schedule
	nextID    int32

	subjectsErr  error
	schedulesErr error
	teacherErr   error
}

func (m *mockStore) ListTeachers(_ context.Context, find *store.FindTeacher) ([]*store.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*store.Teacher, 0)
	for _, teacher := range m.teachers {
		if find.ID != nil && teacher.ID != *find.ID {
			continue
		}
		if len(find.IDs) > 0 && !containsID(find.IDs, teacher.ID) {
			continue
		}
		result = append(result, teacher)
	}
	return result, nil
}

func (m *mockStore) UpdateTeacher(_ context.Context, update *store.UpdateTeacher) (*store.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.teacherErr != nil {
		return nil, m.teacherErr
	}
	for _, teacher := range m.teachers {
		if teacher.ID == update.ID {
			if update.WeeklyLoad != nil {
				teacher.WeeklyLoad = *update.WeeklyLoad
			}
			return teacher, nil
		}
	}
	return nil, errors.New("teacher not found")
}

func (m *mockStore) ListSubjects(_ context.Context, find *store.FindSubject) ([]*store.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subjectsErr != nil {
		return nil, m.subjectsErr
	}
	result := make([]*store.Subject, 0)
	for _, subject := range m.subjects {
		if find.ID != nil && subject.ID != *find.ID {
			continue
		}
		if len(find.IDs) > 0 && !containsID(find.IDs, subject.ID) {
			continue
		}
		if find.TeacherID != nil && !containsID(subject.TeacherIDs, *find.TeacherID) {
			continue
		}
		result = append(result, subject)
	}
	return result, nil
}

func (m *mockStore) ListSchedules(_ context.Context, find *store.FindSchedule) ([]*store.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.schedulesErr != nil {
		return nil, m.schedulesErr
	}
	result := make([]*store.Schedule, 0)
	for _, sched := range m.schedules {
		if find.ID != nil && sched.ID != *find.ID {
			continue
		}
		if find.SectionID != nil && sched.SectionID != *find.SectionID {
			continue
		}
		if len(find.SubjectIDs) > 0 {
			matched := false
			for _, entry := range sched.Entries {
				if containsID(find.SubjectIDs, entry.SubjectID) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, sched)
	}
	return result, nil
}

func (m *mockStore) GetSchedule(ctx context.Context, find *store.FindSchedule) (*store.Schedule, error) {
	list, err := m.ListSchedules(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (m *mockStore) CreateSchedule(_ context.Context, create *store.Schedule) (*store.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	create.ID = m.nextID
	m.schedules = append(m.schedules, create)
	return create, nil
}

func (m *mockStore) UpdateSchedule(_ context.Context, update *store.UpdateSchedule) (*store.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sched := range m.schedules {
		if sched.ID == update.ID {
			if update.Entries != nil {
				for i, entry := range update.Entries {
					entry.Position = int32(i)
				}
				sched.Entries = update.Entries
			}
			return sched, nil
		}
	}
	return nil, errors.New("schedule not found")
}

func (m *mockStore) DeleteSchedule(_ context.Context, delete *store.DeleteSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sched := range m.schedules {
		if sched.ID == delete.ID {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return nil
}

func containsID(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func entry(subjectID int32, day store.Weekday, start, end string) *store.ScheduleEntry {
	return &store.ScheduleEntry{
		SubjectID: subjectID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}
}

// newLoadedStore returns a store with one teacher assigned one subject and
// an existing schedule giving the teacher the requested weekly hours, built
// as whole-hour blocks starting at 8:00 AM across the week.
func newLoadedStore(t *testing.T, weeklyHours int) (*mockStore, *store.Teacher) {
	t.Helper()
	teacher := &store.Teacher{ID: 1, Name: "Ada Lovelace", WeeklyLoad: float64(weeklyHours)}
	m := &mockStore{
		teachers: []*store.Teacher{teacher},
		subjects: []*store.Subject{{ID: 10, Name: "Mathematics", TeacherIDs: []int32{1}}},
		nextID:   100,
	}
	if weeklyHours > 0 {
		entries := []*store.ScheduleEntry{}
		remaining := weeklyHours
		for _, day := range store.Weekdays {
			if remaining <= 0 {
				break
			}
			block := remaining
			if block > 6 {
				block = 6
			}
			end := 8 + block
			entries = append(entries, entry(10, day, "8:00", formatHour(end)))
			remaining -= block
		}
		m.schedules = append(m.schedules, &store.Schedule{
			ID:        99,
			SectionID: 900,
			Entries:   entries,
		})
	}
	return m, teacher
}

func formatHour(h int) string {
	return map[int]string{
		9: "9:00", 10: "10:00", 11: "11:00", 12: "12:00",
		13: "13:00", 14: "14:00",
	}[h]
}

func TestCreateScheduleRejectedOverCap(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 25)
	svc := NewService(m, 30)

	// Two Monday entries totaling six hours would land at 31.
	_, err := svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(10, store.Monday, "8:00 AM", "11:00 AM"),
		entry(10, store.Monday, "1:00 PM", "4:00 PM"),
	})
	require.Error(t, err)

	var capErr *CapError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, teacher.ID, capErr.TeacherID)
	assert.Contains(t, capErr.Error(), "Ada Lovelace: ")
	assert.InDelta(t, 25.0, capErr.Decision.CurrentLoad, 1e-9)
	assert.InDelta(t, 31.0, capErr.Decision.NewLoad, 1e-9)

	// No partial write: the section still has no schedule.
	sched, err := svc.ScheduleBySection(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, sched)
	// And the cached load was not touched.
	assert.InDelta(t, 25.0, teacher.WeeklyLoad, 1e-9)
}

func TestCreateScheduleAtCapAllowed(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 25)
	svc := NewService(m, 30)

	// Exactly five more hours lands on the inclusive cap.
	created, err := svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(10, store.Friday, "8:00 AM", "1:00 PM"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, created.Entries, 1)

	// The cached weekly load was recomputed from the stored schedules.
	assert.InDelta(t, 30.0, teacher.WeeklyLoad, 1e-9)
}

func TestCreateScheduleConflictWhenSectionHasOne(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedStore(t, 10)
	svc := NewService(m, 30)

	_, err := svc.CreateSchedule(ctx, 900, []*store.ScheduleEntry{
		entry(10, store.Monday, "8:00", "9:00"),
	})
	require.ErrorIs(t, err, ErrScheduleExists)
}

func TestCreateScheduleUnknownSubject(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedStore(t, 0)
	svc := NewService(m, 30)

	_, err := svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(42, store.Monday, "8:00", "9:00"),
	})
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestCreateScheduleInvalidEntry(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedStore(t, 0)
	svc := NewService(m, 30)

	_, err := svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(10, store.Weekday("Funday"), "8:00", "9:00"),
	})
	require.ErrorIs(t, err, ErrInvalidEntry)

	_, err = svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(10, store.Monday, "", "9:00"),
	})
	require.ErrorIs(t, err, ErrInvalidEntry)
}

func TestCapErrorFallbackLabel(t *testing.T) {
	capErr := &CapError{
		TeacherID: 7,
		Decision:  &Decision{Message: "weekly load would rise from 28 to 33 hours, exceeding the 30 hour cap"},
	}
	assert.Contains(t, capErr.Error(), "Teacher: ")
}

func TestRemoveEntryReducesStoredLoad(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 30)
	svc := NewService(m, 30)

	// Append a dedicated four hour entry at the cap is not possible, so
	// seed it directly as pre-existing data instead.
	m.schedules[0].Entries = append(m.schedules[0].Entries,
		entry(10, store.Sunday, "8:00", "12:00"))
	for i, e := range m.schedules[0].Entries {
		e.Position = int32(i)
	}
	summary, err := svc.AggregateLoad(ctx, teacher.ID)
	require.NoError(t, err)
	require.InDelta(t, 34.0, summary.WeeklyHours, 1e-9)

	position := int32(len(m.schedules[0].Entries) - 1)
	updated, err := svc.RemoveEntry(ctx, 900, position)
	require.NoError(t, err)
	require.Len(t, updated.Entries, int(position))

	assert.InDelta(t, 30.0, teacher.WeeklyLoad, 1e-9)

	// Remove a six hour block and the cached figure follows.
	updated, err = svc.RemoveEntry(ctx, 900, 0)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.InDelta(t, 24.0, teacher.WeeklyLoad, 1e-9)
}

func TestRemoveEntryOutOfRange(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedStore(t, 6)
	svc := NewService(m, 30)

	_, err := svc.RemoveEntry(ctx, 900, 5)
	require.ErrorIs(t, err, ErrEntryNotFound)
	_, err = svc.RemoveEntry(ctx, 123, 0)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestBatchChecksTeacherOnceWithCombinedHours(t *testing.T) {
	ctx := context.Background()
	// Two subjects co-taught by the same teacher: the batch must check the
	// teacher once with the combined hours, not once per subject.
	teacher := &store.Teacher{ID: 1, Name: "Grace Hopper"}
	m := &mockStore{
		teachers: []*store.Teacher{teacher},
		subjects: []*store.Subject{
			{ID: 10, Name: "Physics", TeacherIDs: []int32{1}},
			{ID: 11, Name: "Chemistry", TeacherIDs: []int32{1}},
		},
	}
	svc := NewService(m, 30)

	// 16 + 16 hours in a single batch: each alone fits, together they do not.
	_, err := svc.CreateSchedule(ctx, 1, []*store.ScheduleEntry{
		entry(10, store.Monday, "6:00", "22:00"),
		entry(11, store.Tuesday, "6:00", "22:00"),
	})
	require.Error(t, err)
	var capErr *CapError
	require.True(t, errors.As(err, &capErr))
	assert.InDelta(t, 32.0, capErr.Decision.NewLoad, 1e-9)
}

func TestUpdateEntrySyncsOldAndNewTeachers(t *testing.T) {
	ctx := context.Background()
	ada := &store.Teacher{ID: 1, Name: "Ada"}
	alan := &store.Teacher{ID: 2, Name: "Alan"}
	m := &mockStore{
		teachers: []*store.Teacher{ada, alan},
		subjects: []*store.Subject{
			{ID: 10, Name: "Mathematics", TeacherIDs: []int32{1}},
			{ID: 11, Name: "Computing", TeacherIDs: []int32{2}},
		},
		schedules: []*store.Schedule{{
			ID:        5,
			SectionID: 1,
			Entries:   []*store.ScheduleEntry{entry(10, store.Monday, "8:00", "11:00")},
		}},
	}
	svc := NewService(m, 30)

	// Swapping the entry's subject moves three hours from Ada to Alan; both
	// cached loads must be recomputed.
	_, err := svc.UpdateEntry(ctx, 1, 0, entry(11, store.Monday, "8:00", "11:00"))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ada.WeeklyLoad, 1e-9)
	assert.InDelta(t, 3.0, alan.WeeklyLoad, 1e-9)
}

func TestReplaceEntriesAllOrNothing(t *testing.T) {
	ctx := context.Background()
	ada := &store.Teacher{ID: 1, Name: "Ada"}
	alan := &store.Teacher{ID: 2, Name: "Alan"}
	m := &mockStore{
		teachers: []*store.Teacher{ada, alan},
		subjects: []*store.Subject{
			{ID: 10, Name: "Mathematics", TeacherIDs: []int32{1}},
			{ID: 11, Name: "Computing", TeacherIDs: []int32{2}},
		},
		schedules: []*store.Schedule{{
			ID:        5,
			SectionID: 1,
			Entries:   []*store.ScheduleEntry{entry(10, store.Monday, "8:00", "9:00")},
		}},
	}
	svc := NewService(m, 30)

	// Alan's replacement entry is fine, Ada's is not; nothing may change.
	_, err := svc.ReplaceEntries(ctx, 1, []*store.ScheduleEntry{
		entry(11, store.Monday, "8:00", "10:00"),
		entry(10, store.Tuesday, "0:00", "23:00"),
		entry(10, store.Wednesday, "0:00", "23:00"),
	})
	require.Error(t, err)
	var capErr *CapError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, ada.ID, capErr.TeacherID)

	sched, err := svc.ScheduleBySection(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sched.Entries, 1)
	assert.Equal(t, int32(10), sched.Entries[0].SubjectID)
}

func TestDeleteScheduleSyncsTeachers(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 12)
	svc := NewService(m, 30)

	require.NoError(t, svc.DeleteSchedule(ctx, 900))
	assert.InDelta(t, 0.0, teacher.WeeklyLoad, 1e-9)

	err := svc.DeleteSchedule(ctx, 900)
	require.ErrorIs(t, err, ErrScheduleNotFound)
}
