package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/miniapi/miniapi/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	// Stable ordering keeps scrapes diffable.
	keys := make([]metrics.HTTPSeriesKey, 0, len(snap.HTTP))
	for key := range snap.HTTP {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Route != keys[j].Route {
			return keys[i].Route < keys[j].Route
		}
		if keys[i].Method != keys[j].Method {
			return keys[i].Method < keys[j].Method
		}
		return keys[i].Status < keys[j].Status
	})

	for _, key := range keys {
		series := snap.HTTP[key]
		labels := fmt.Sprintf("method=%q,route=%q,status=\"%d\"", key.Method, key.Route, key.Status)
		writeMetric(w, "miniapi_http_requests_total{%s} %d\n", labels, series.Count)
		writeMetric(w, "miniapi_http_request_duration_seconds_count{%s} %d\n", labels, series.Count)
		writeMetric(w, "miniapi_http_request_duration_seconds_sum{%s} %.6f\n", labels, float64(series.DurationTotalNs)/1e9)
	}

	writeMetric(w, "miniapi_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "miniapi_users_updated_total %d\n", snap.UsersUpdated)
	writeMetric(w, "miniapi_users_deleted_total %d\n", snap.UsersDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
