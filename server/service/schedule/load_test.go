package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack/store"
)

func TestAggregateLoadNoSubjects(t *testing.T) {
	ctx := context.Background()
	m := &mockStore{teachers: []*store.Teacher{{ID: 1, Name: "Ada"}}}
	svc := NewService(m, 30)

	summary, err := svc.AggregateLoad(ctx, 1)
	require.NoError(t, err)
	assert.False(t, summary.Degraded)
	assert.Zero(t, summary.WeeklyHours)
	assert.Zero(t, summary.DailyHours)
	require.Len(t, summary.DailyBreakdown, 7)
	for _, day := range store.Weekdays {
		assert.Zero(t, summary.DailyBreakdown[day])
	}
}

func TestAggregateLoadBreakdown(t *testing.T) {
	ctx := context.Background()
	m := &mockStore{
		teachers: []*store.Teacher{{ID: 1, Name: "Ada"}},
		subjects: []*store.Subject{
			{ID: 10, Name: "Mathematics", TeacherIDs: []int32{1}},
			{ID: 11, Name: "Art", TeacherIDs: []int32{2}},
		},
		schedules: []*store.Schedule{{
			ID:        5,
			SectionID: 1,
			Entries: []*store.ScheduleEntry{
				entry(10, store.Monday, "8:00 AM", "9:30 AM"),
				entry(10, store.Monday, "1:00 PM", "3:00 PM"),
				entry(10, store.Wednesday, "8:00 AM", "10:00 AM"),
				// Another teacher's subject in the same schedule is ignored.
				entry(11, store.Monday, "8:00 AM", "4:00 PM"),
			},
		}},
	}
	svc := NewService(m, 30)

	summary, err := svc.AggregateLoad(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.DailyBreakdown[store.Monday], 1e-9)
	assert.InDelta(t, 2.0, summary.DailyBreakdown[store.Wednesday], 1e-9)
	assert.Zero(t, summary.DailyBreakdown[store.Friday])
	assert.InDelta(t, 5.5, summary.WeeklyHours, 1e-9)
	// DailyHours reports the busiest single day, not the weekly sum.
	assert.InDelta(t, 3.5, summary.DailyHours, 1e-9)
}

func TestAggregateLoadFallbackEntry(t *testing.T) {
	ctx := context.Background()
	m := &mockStore{
		teachers: []*store.Teacher{{ID: 1, Name: "Ada"}},
		subjects: []*store.Subject{{ID: 10, Name: "Mathematics", TeacherIDs: []int32{1}}},
		schedules: []*store.Schedule{{
			ID:        5,
			SectionID: 1,
			Entries: []*store.ScheduleEntry{
				entry(10, store.Monday, "not a time", "also not a time"),
				entry(10, store.Tuesday, "8:00", "10:00"),
			},
		}},
	}
	svc := NewService(m, 30)

	// The malformed entry counts as the one hour fallback.
	summary, err := svc.AggregateLoad(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, summary.DailyBreakdown[store.Monday], 1e-9)
	assert.InDelta(t, 3.0, summary.WeeklyHours, 1e-9)
}

func TestAggregateLoadIdempotent(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 17)
	svc := NewService(m, 30)

	first, err := svc.AggregateLoad(ctx, teacher.ID)
	require.NoError(t, err)
	second, err := svc.AggregateLoad(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregateLoadDegradesToZero(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 20)
	svc := NewService(m, 30)

	// A failing subject lookup degrades to zero load instead of blocking.
	m.subjectsErr = errors.New("connection reset")
	summary, err := svc.AggregateLoad(ctx, teacher.ID)
	require.NoError(t, err)
	assert.True(t, summary.Degraded)
	assert.Zero(t, summary.WeeklyHours)

	// Same for a failing schedule lookup.
	m.subjectsErr = nil
	m.schedulesErr = errors.New("connection reset")
	summary, err = svc.AggregateLoad(ctx, teacher.ID)
	require.NoError(t, err)
	assert.True(t, summary.Degraded)
	assert.Zero(t, summary.WeeklyHours)
}

func TestSyncSkipsDegradedSummary(t *testing.T) {
	ctx := context.Background()
	m, teacher := newLoadedStore(t, 10)
	svc := NewService(m, 30).(*service)

	m.schedulesErr = errors.New("connection reset")
	svc.syncTeachingLoad(ctx, []int32{teacher.ID})

	// The cached figure keeps its previous value rather than dropping to a
	// zero that only means "the read failed".
	assert.InDelta(t, 10.0, teacher.WeeklyLoad, 1e-9)
}
