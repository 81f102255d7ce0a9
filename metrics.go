package covertree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each insert operation. added is false when
	// the element was rejected as a duplicate or by the capacity floor.
	RecordAdd(duration time.Duration, added bool)

	// RecordNearest is called after each single nearest-neighbor query.
	RecordNearest(duration time.Duration)

	// RecordKNearest is called after each k-nearest-neighbors query.
	RecordKNearest(k int, duration time.Duration)

	// RecordNeighborhood is called after each range query.
	RecordNeighborhood(duration time.Duration)

	// RecordPrune is called after each k-centers pruning.
	// removed is the number of elements evicted from the tree.
	RecordPrune(removed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, bool)     {}
func (NoopMetricsCollector) RecordNearest(time.Duration)       {}
func (NoopMetricsCollector) RecordKNearest(int, time.Duration) {}
func (NoopMetricsCollector) RecordNeighborhood(time.Duration)  {}
func (NoopMetricsCollector) RecordPrune(int, time.Duration)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount         atomic.Int64
	AddRejected      atomic.Int64
	AddTotalNanos    atomic.Int64
	SearchCount      atomic.Int64
	SearchTotalNanos atomic.Int64
	PruneCount       atomic.Int64
	PruneRemoved     atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, added bool) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if !added {
		b.AddRejected.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(duration time.Duration) {
	b.recordSearch(duration)
}

// RecordKNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordKNearest(_ int, duration time.Duration) {
	b.recordSearch(duration)
}

// RecordNeighborhood implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighborhood(duration time.Duration) {
	b.recordSearch(duration)
}

// RecordPrune implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrune(removed int, duration time.Duration) {
	b.PruneCount.Add(1)
	b.PruneRemoved.Add(int64(removed))
}

func (b *BasicMetricsCollector) recordSearch(duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:       b.AddCount.Load(),
		AddRejected:    b.AddRejected.Load(),
		AddAvgNanos:    avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		SearchCount:    b.SearchCount.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		PruneCount:     b.PruneCount.Load(),
		PruneRemoved:   b.PruneRemoved.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount       int64
	AddRejected    int64
	AddAvgNanos    int64
	SearchCount    int64
	SearchAvgNanos int64
	PruneCount     int64
	PruneRemoved   int64
}
