package handler

import (
	"context"
	"net/http"
	"time"
)

// readinessTimeout bounds the store round trip so a degraded store cannot
// stall probing.
const readinessTimeout = 2 * time.Second

// HealthChecker defines an interface for checking store connectivity.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages the liveness and readiness endpoints.
type HealthHandler struct {
	store HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store HealthChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse is the payload for both probes.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health is the liveness probe. It performs no I/O and succeeds even when
// the store is unreachable.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready is the readiness probe. It issues a minimal round trip to the
// store; the underlying error is surfaced in the body for diagnostics.
//
// GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
