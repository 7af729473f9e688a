package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// HTTPSeriesKey identifies one labeled HTTP request series.
type HTTPSeriesKey struct {
	Method string
	Route  string
	Status int
}

// HTTPSeries accumulates observations for one labeled series.
type HTTPSeries struct {
	Count           uint64
	DurationTotalNs int64
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTP         map[HTTPSeriesKey]HTTPSeries
	UsersCreated uint64
	UsersUpdated uint64
	UsersDeleted uint64
}

// InMemoryRecorder stores metrics in memory and serves the scrape endpoint.
type InMemoryRecorder struct {
	mu   sync.Mutex
	http map[HTTPSeriesKey]HTTPSeries

	usersCreated uint64
	usersUpdated uint64
	usersDeleted uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		http: make(map[HTTPSeriesKey]HTTPSeries),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	http := make(map[HTTPSeriesKey]HTTPSeries, len(m.http))
	for k, v := range m.http {
		http[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		HTTP:         http,
		UsersCreated: atomic.LoadUint64(&m.usersCreated),
		UsersUpdated: atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted: atomic.LoadUint64(&m.usersDeleted),
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	key := HTTPSeriesKey{Method: method, Route: route, Status: status}

	m.mu.Lock()
	series := m.http[key]
	series.Count++
	series.DurationTotalNs += duration.Nanoseconds()
	m.http[key] = series
	m.mu.Unlock()
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments the user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}
