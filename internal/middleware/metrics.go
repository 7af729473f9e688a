package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/miniapi/miniapi/internal/metrics"
)

// unmatchedRoute labels requests that never matched a route template, so
// arbitrary 404 paths cannot blow up series cardinality.
const unmatchedRoute = "unmatched"

// Metrics returns a middleware that records a counter and a duration
// observation for every completed request, labeled by method, route
// template and final status code. Recording happens after the handler
// finishes, never alters the response, and never fails the request.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if recorder == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			// The chi route context holds the matched pattern only after
			// routing has run.
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			recorder.ObserveHTTPRequest(r.Method, route, wrapped.status, time.Since(start))
		})
	}
}
