// Package stats collects school-wide statistics from the store on a fixed
// interval so the dashboard endpoint never fans out into table scans per
// request.
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/classtrack/classtrack/store"
)

// Stats is a point-in-time snapshot of school-wide counts.
type Stats struct {
	TotalStudents      int64 `json:"totalStudents"`
	TotalTeachers      int64 `json:"totalTeachers"`
	TotalSections      int64 `json:"totalSections"`
	TotalSubjects      int64 `json:"totalSubjects"`
	TotalSchedules     int64 `json:"totalSchedules"`
	TotalScheduleSlots int64 `json:"totalScheduleSlots"`

	// TotalWeeklyHours sums the cached weekly teaching load across all
	// teachers.
	TotalWeeklyHours float64 `json:"totalWeeklyHours"`
	// TeachersNearCap counts teachers at or above nearCapRatio of the
	// configured weekly cap.
	TeachersNearCap int64 `json:"teachersNearCap"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// nearCapRatio marks a teacher as "near cap" once their load reaches this
// share of the configured weekly maximum.
const nearCapRatio = 0.8

const collectInterval = time.Hour

// Collector refreshes a Stats snapshot from the store.
type Collector struct {
	store   *store.Store
	loadCap float64

	mu    sync.RWMutex
	stats Stats

	stopOnce sync.Once
	stop     chan struct{}
}

// NewCollector creates a collector. loadCap is the configured weekly
// teaching-hour maximum used for the near-cap count.
func NewCollector(st *store.Store, loadCap float64) *Collector {
	return &Collector{
		store:   st,
		loadCap: loadCap,
		stop:    make(chan struct{}),
	}
}

// Start performs an initial collection and then refreshes hourly until the
// context is cancelled or Stop is called.
func (c *Collector) Start(ctx context.Context) {
	c.Collect(ctx)

	go func() {
		ticker := time.NewTicker(collectInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Collect(ctx)
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop halts the periodic refresh.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// GetStats returns the latest snapshot.
func (c *Collector) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Collect refreshes the snapshot immediately. Failed reads leave the
// affected counters at their previous values.
func (c *Collector) Collect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if students, err := c.store.ListStudents(ctx, &store.FindStudent{}); err == nil {
		c.stats.TotalStudents = int64(len(students))
	}
	if sections, err := c.store.ListSections(ctx, &store.FindSection{}); err == nil {
		c.stats.TotalSections = int64(len(sections))
	}
	if subjects, err := c.store.ListSubjects(ctx, &store.FindSubject{}); err == nil {
		c.stats.TotalSubjects = int64(len(subjects))
	}

	if teachers, err := c.store.ListTeachers(ctx, &store.FindTeacher{}); err == nil {
		c.stats.TotalTeachers = int64(len(teachers))

		totalHours := 0.0
		nearCap := int64(0)
		for _, teacher := range teachers {
			totalHours += teacher.WeeklyLoad
			if c.loadCap > 0 && teacher.WeeklyLoad >= c.loadCap*nearCapRatio {
				nearCap++
			}
		}
		c.stats.TotalWeeklyHours = totalHours
		c.stats.TeachersNearCap = nearCap
	}

	if schedules, err := c.store.ListSchedules(ctx, &store.FindSchedule{}); err == nil {
		c.stats.TotalSchedules = int64(len(schedules))
		slots := int64(0)
		for _, schedule := range schedules {
			slots += int64(len(schedule.Entries))
		}
		c.stats.TotalScheduleSlots = slots
	}

	c.stats.LastUpdated = time.Now()
}
