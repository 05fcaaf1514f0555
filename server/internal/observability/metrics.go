package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates request counters for the HTTP layer, including how
// often the teaching-load guard rejected a schedule mutation.
type Metrics struct {
	mu sync.Mutex

	requestTotal   atomic.Int64
	requestFailed  atomic.Int64
	capRejections  atomic.Int64
	loadSyncErrors atomic.Int64

	durations    []time.Duration
	maxDurations int
}

// NewMetrics creates a metrics collector keeping the last maxDurations
// request durations for averaging.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the process-wide metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records one handled request.
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}
	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()
}

// RecordCapRejection records a schedule mutation rejected by the load cap.
func (m *Metrics) RecordCapRejection() {
	m.capRejections.Add(1)
}

// RecordLoadSyncError records a failed post-commit teaching-load sync.
func (m *Metrics) RecordLoadSyncError() {
	m.loadSyncErrors.Add(1)
}

// Snapshot is a point-in-time view of the collected metrics.
type Snapshot struct {
	RequestTotal   int64   `json:"requestTotal"`
	RequestFailed  int64   `json:"requestFailed"`
	CapRejections  int64   `json:"capRejections"`
	LoadSyncErrors int64   `json:"loadSyncErrors"`
	AvgDurationMs  float64 `json:"avgDurationMs"`
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		RequestTotal:   m.requestTotal.Load(),
		RequestFailed:  m.requestFailed.Load(),
		CapRejections:  m.capRejections.Load(),
		LoadSyncErrors: m.loadSyncErrors.Load(),
	}
	m.mu.Lock()
	if len(m.durations) > 0 {
		var total time.Duration
		for _, d := range m.durations {
			total += d
		}
		snap.AvgDurationMs = float64(total.Milliseconds()) / float64(len(m.durations))
	}
	m.mu.Unlock()
	return snap
}
