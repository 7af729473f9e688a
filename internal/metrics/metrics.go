// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// ObserveHTTPRequest records one completed HTTP request, labeled by
	// method, route template and final status code. The route template
	// (not the raw path) keeps label cardinality bounded.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// User lifecycle metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
