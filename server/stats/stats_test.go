package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack/store"
	"github.com/classtrack/classtrack/store/test"
)

func TestCollectorCollect(t *testing.T) {
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)

	_, err := ts.CreateTeacher(ctx, &store.Teacher{UID: "t-near", Name: "Grace Hopper", WeeklyLoad: 26})
	require.NoError(t, err)
	_, err = ts.CreateTeacher(ctx, &store.Teacher{UID: "t-light", Name: "Alan Turing", WeeklyLoad: 4})
	require.NoError(t, err)
	section, err := ts.CreateSection(ctx, &store.Section{UID: "s-9a", Name: "9A", GradeLevel: "9"})
	require.NoError(t, err)
	_, err = ts.CreateStudent(ctx, &store.Student{UID: "st-1", Name: "Lin", SectionID: section.ID})
	require.NoError(t, err)

	collector := NewCollector(ts, 30)
	collector.Collect(ctx)

	snapshot := collector.GetStats()
	require.EqualValues(t, 2, snapshot.TotalTeachers)
	require.EqualValues(t, 1, snapshot.TotalSections)
	require.EqualValues(t, 1, snapshot.TotalStudents)
	require.InDelta(t, 30.0, snapshot.TotalWeeklyHours, 1e-9)
	require.EqualValues(t, 1, snapshot.TeachersNearCap)
	require.False(t, snapshot.LastUpdated.IsZero())
}

func TestCollectorEmptyStore(t *testing.T) {
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)

	collector := NewCollector(ts, 30)
	collector.Collect(ctx)

	snapshot := collector.GetStats()
	require.Zero(t, snapshot.TotalTeachers)
	require.Zero(t, snapshot.TotalStudents)
	require.Zero(t, snapshot.TeachersNearCap)
	require.Zero(t, snapshot.TotalWeeklyHours)
}

func TestCollectorStopIdempotent(t *testing.T) {
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)

	collector := NewCollector(ts, 30)
	collector.Start(ctx)
	collector.Stop()
	collector.Stop()
}
