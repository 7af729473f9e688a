package metrics

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_ObserveHTTPRequest(t *testing.T) {
	m := NewInMemory()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/users", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/users", 200, 30*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/users/add", 409, 5*time.Millisecond)

	snap := m.Snapshot()

	list := snap.HTTP[HTTPSeriesKey{Method: http.MethodGet, Route: "/api/v1/users", Status: 200}]
	if list.Count != 2 {
		t.Errorf("expected 2 observations for list series, got %d", list.Count)
	}
	if list.DurationTotalNs != (40 * time.Millisecond).Nanoseconds() {
		t.Errorf("expected 40ms total duration, got %dns", list.DurationTotalNs)
	}

	create := snap.HTTP[HTTPSeriesKey{Method: http.MethodPost, Route: "/api/v1/users/add", Status: 409}]
	if create.Count != 1 {
		t.Errorf("expected 1 observation for create series, got %d", create.Count)
	}
}

func TestInMemoryRecorder_UserCounters(t *testing.T) {
	m := NewInMemory()

	m.IncUserCreated()
	m.IncUserCreated()
	m.IncUserUpdated()
	m.IncUserDeleted()

	snap := m.Snapshot()

	if snap.UsersCreated != 2 {
		t.Errorf("expected 2 users created, got %d", snap.UsersCreated)
	}
	if snap.UsersUpdated != 1 {
		t.Errorf("expected 1 user updated, got %d", snap.UsersUpdated)
	}
	if snap.UsersDeleted != 1 {
		t.Errorf("expected 1 user deleted, got %d", snap.UsersDeleted)
	}
}

func TestInMemoryRecorder_ConcurrentObservations(t *testing.T) {
	m := NewInMemory()

	const goroutines = 8
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				m.ObserveHTTPRequest(http.MethodGet, "/api/v1/users/{id}", 200, time.Millisecond)
				m.IncUserCreated()
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()

	series := snap.HTTP[HTTPSeriesKey{Method: http.MethodGet, Route: "/api/v1/users/{id}", Status: 200}]
	if series.Count != goroutines*perGoroutine {
		t.Errorf("expected %d observations, got %d", goroutines*perGoroutine, series.Count)
	}
	if snap.UsersCreated != goroutines*perGoroutine {
		t.Errorf("expected %d users created, got %d", goroutines*perGoroutine, snap.UsersCreated)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := NewInMemory()
	m.ObserveHTTPRequest(http.MethodGet, "/health", 200, time.Millisecond)

	snap := m.Snapshot()
	m.ObserveHTTPRequest(http.MethodGet, "/health", 200, time.Millisecond)

	series := snap.HTTP[HTTPSeriesKey{Method: http.MethodGet, Route: "/health", Status: 200}]
	if series.Count != 1 {
		t.Errorf("snapshot mutated after the fact: count = %d, want 1", series.Count)
	}
}
