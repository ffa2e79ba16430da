package beanstalk

import "sync/atomic"

// ConnMetrics contains counters of operations performed on a connection.
// All fields are safe for concurrent access.
//
// For Prometheus integration, expose all fields as counters; derive the
// reserve hit rate as ReserveHits/Reserves and the peek hit rate as
// (Peeks-PeekMisses)/Peeks.
type ConnMetrics struct {
	Puts        uint64 // Put operations that returned an id
	Reserves    uint64 // reserve round trips, including timed-out ones
	ReserveHits uint64 // reserves that returned a job
	Deletes     uint64 // successful Delete operations
	Releases    uint64 // successful Release operations
	Buries      uint64 // successful Bury operations
	Touches     uint64 // successful Touch operations
	Kicks       uint64 // successful Kick operations
	Peeks       uint64 // peek round trips, including misses
	PeekMisses  uint64 // peeks translated to a nil job
	Errors      uint64 // transport failures and unexpected responses
}

// connMetricsCollector provides internal methods for updating metrics.
// Not exported; the connection updates its own counters.
type connMetricsCollector struct {
	metrics *ConnMetrics
}

func newConnMetricsCollector() *connMetricsCollector {
	return &connMetricsCollector{
		metrics: &ConnMetrics{},
	}
}

func (c *connMetricsCollector) recordPut() {
	atomic.AddUint64(&c.metrics.Puts, 1)
}

func (c *connMetricsCollector) recordReserve(hit bool) {
	atomic.AddUint64(&c.metrics.Reserves, 1)
	if hit {
		atomic.AddUint64(&c.metrics.ReserveHits, 1)
	}
}

func (c *connMetricsCollector) recordDelete() {
	atomic.AddUint64(&c.metrics.Deletes, 1)
}

func (c *connMetricsCollector) recordRelease() {
	atomic.AddUint64(&c.metrics.Releases, 1)
}

func (c *connMetricsCollector) recordBury() {
	atomic.AddUint64(&c.metrics.Buries, 1)
}

func (c *connMetricsCollector) recordTouch() {
	atomic.AddUint64(&c.metrics.Touches, 1)
}

func (c *connMetricsCollector) recordKick() {
	atomic.AddUint64(&c.metrics.Kicks, 1)
}

func (c *connMetricsCollector) recordPeek(hit bool) {
	atomic.AddUint64(&c.metrics.Peeks, 1)
	if !hit {
		atomic.AddUint64(&c.metrics.PeekMisses, 1)
	}
}

func (c *connMetricsCollector) recordError() {
	atomic.AddUint64(&c.metrics.Errors, 1)
}

func (c *connMetricsCollector) snapshot() ConnMetrics {
	return ConnMetrics{
		Puts:        atomic.LoadUint64(&c.metrics.Puts),
		Reserves:    atomic.LoadUint64(&c.metrics.Reserves),
		ReserveHits: atomic.LoadUint64(&c.metrics.ReserveHits),
		Deletes:     atomic.LoadUint64(&c.metrics.Deletes),
		Releases:    atomic.LoadUint64(&c.metrics.Releases),
		Buries:      atomic.LoadUint64(&c.metrics.Buries),
		Touches:     atomic.LoadUint64(&c.metrics.Touches),
		Kicks:       atomic.LoadUint64(&c.metrics.Kicks),
		Peeks:       atomic.LoadUint64(&c.metrics.Peeks),
		PeekMisses:  atomic.LoadUint64(&c.metrics.PeekMisses),
		Errors:      atomic.LoadUint64(&c.metrics.Errors),
	}
}

// Metrics returns a snapshot of the connection's operation counters.
func (c *Conn) Metrics() ConnMetrics {
	return c.metrics.snapshot()
}
