package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtrack/classtrack/store"
)

// newStoreAtLoad builds a store whose single teacher currently aggregates
// to exactly the given weekly hours.
func newStoreAtLoad(t *testing.T, weeklyHours int) *mockStore {
	t.Helper()
	m, _ := newLoadedStore(t, weeklyHours)
	return m
}

func TestCanAssignDenied(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStoreAtLoad(t, 28), 30)

	decision, err := svc.CanAssign(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.InDelta(t, 28.0, decision.CurrentLoad, 1e-9)
	assert.InDelta(t, 33.0, decision.NewLoad, 1e-9)
	assert.InDelta(t, 30.0, decision.Cap, 1e-9)
	assert.Contains(t, decision.Message, "33")
	assert.Contains(t, decision.Message, "30")
}

func TestCanAssignCapInclusive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStoreAtLoad(t, 28), 30)

	// Landing exactly on the cap is allowed.
	decision, err := svc.CanAssign(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.InDelta(t, 30.0, decision.NewLoad, 1e-9)
}

func TestCanAssignZeroLoadTeacher(t *testing.T) {
	ctx := context.Background()
	m := &mockStore{teachers: []*store.Teacher{{ID: 1}}}
	svc := NewService(m, 30)

	decision, err := svc.CanAssign(ctx, 1, 12)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.CurrentLoad)
	assert.InDelta(t, 12.0, decision.NewLoad, 1e-9)
}

func TestCanAssignIsSideEffectFree(t *testing.T) {
	ctx := context.Background()
	m := newStoreAtLoad(t, 28)
	svc := NewService(m, 30)

	before := m.teachers[0].WeeklyLoad
	_, err := svc.CanAssign(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, before, m.teachers[0].WeeklyLoad)
	assert.Len(t, m.schedules, 1)
}
