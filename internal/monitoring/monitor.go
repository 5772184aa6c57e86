package monitoring

import (
	"sync"
	"time"
)

// Monitor collects in-process runtime stats for the dashboard summary.
type Monitor struct {
	mu        sync.RWMutex
	writes    map[string]int64
	lastWrite map[string]time.Time
	startTime time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		writes:    make(map[string]int64),
		lastWrite: make(map[string]time.Time),
		startTime: time.Now(),
	}
}

// RecordWrite notes a successful mutation against an entity.
func (m *Monitor) RecordWrite(entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes[entity]++
	m.lastWrite[entity] = time.Now()
}

// WriteCount returns the number of mutations recorded for an entity.
func (m *Monitor) WriteCount(entity string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[entity]
}

// Snapshot returns all current stats plus uptime.
func (m *Monitor) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]interface{}, len(m.writes)+1)
	for entity, count := range m.writes {
		stats[entity+"_writes"] = count
		if ts, ok := m.lastWrite[entity]; ok {
			stats[entity+"_last_write"] = ts.Format(time.RFC3339)
		}
	}
	stats["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return stats
}

// Reset clears all stats
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = make(map[string]int64)
	m.lastWrite = make(map[string]time.Time)
}
