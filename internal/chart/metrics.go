package chart

import (
	"sync/atomic"
	"time"
)

// Metrics tracks chart activity.
type Metrics struct {
	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMinNs   atomic.Int64
	renderMaxNs   atomic.Int64
	lastRenderNs  atomic.Int64

	// Scene flushes
	flushCount    atomic.Uint64
	layersPainted atomic.Uint64
	fullRedraws   atomic.Uint64

	// Rejected writes and structural problems
	rejected   atomic.Uint64
	unknown    atomic.Uint64
	mismatches atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// The first render is always smaller.
	m.renderMinNs.Store(1<<63 - 1)
	return m
}

// RecordRender records the duration of one Render call.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)
	m.lastRenderNs.Store(ns)

	for {
		old := m.renderMinNs.Load()
		if ns >= old || m.renderMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFlush records one scene flush.
func (m *Metrics) RecordFlush(layers int, full bool) {
	m.flushCount.Add(1)
	m.layersPainted.Add(uint64(layers))
	if full {
		m.fullRedraws.Add(1)
	}
}

// RecordRejected records a write that failed validation.
func (m *Metrics) RecordRejected() {
	m.rejected.Add(1)
}

// RecordUnknown records a write to an undeclared key.
func (m *Metrics) RecordUnknown() {
	m.unknown.Add(1)
}

// RecordMismatch records a structural mismatch, such as a legend that does
// not match the series.
func (m *Metrics) RecordMismatch() {
	m.mismatches.Add(1)
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renderCount := m.renderCount.Load()

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}
	minRenderNs := m.renderMinNs.Load()
	if minRenderNs == 1<<63-1 {
		minRenderNs = 0
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		RenderCount:   renderCount,
		AvgRenderNs:   avgRenderNs,
		MinRenderNs:   minRenderNs,
		MaxRenderNs:   m.renderMaxNs.Load(),
		LastRenderNs:  m.lastRenderNs.Load(),
		FlushCount:    m.flushCount.Load(),
		LayersPainted: m.layersPainted.Load(),
		FullRedraws:   m.fullRedraws.Load(),
		Rejected:      m.rejected.Load(),
		Unknown:       m.unknown.Load(),
		Mismatches:    m.mismatches.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.renderMinNs.Store(1<<63 - 1)
	m.renderMaxNs.Store(0)
	m.lastRenderNs.Store(0)
	m.flushCount.Store(0)
	m.layersPainted.Store(0)
	m.fullRedraws.Store(0)
	m.rejected.Store(0)
	m.unknown.Store(0)
	m.mismatches.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	RenderCount   uint64
	AvgRenderNs   int64
	MinRenderNs   int64
	MaxRenderNs   int64
	LastRenderNs  int64
	FlushCount    uint64
	LayersPainted uint64
	FullRedraws   uint64
	Rejected      uint64
	Unknown       uint64
	Mismatches    uint64
}

// Metrics returns the chart metrics.
func (c *Chart) Metrics() *Metrics {
	return c.metrics
}
