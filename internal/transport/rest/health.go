package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/leaflink/leaflink-backend/internal/store"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints. db is nil in local mode; the
// local store has nothing to ping.
type HealthHandler struct {
	db      dbPinger
	mode    store.Mode
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, mode store.Mode, version string) *HealthHandler {
	return &HealthHandler{db: db, mode: mode, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Store      string                `json:"store"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Store:     string(h.mode),
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. In remote mode it pings the database: 200 if
// OK, 503 if not. In local mode it is always ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Store:     string(h.mode),
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Store:     string(h.mode),
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component status and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{
				Status:  "ok",
				Latency: latency.String(),
			}
		}
	} else {
		components["local_store"] = CompStatus{Status: "ok"}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Store:      string(h.mode),
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
