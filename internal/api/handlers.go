package api

import (
	"context"
	"fmt"
	"github.com/samber/lo"
	"net/http"
	"time"
)

const (
	ServiceName = "Job Market Dashboard API"
	Version     = "1.0.0"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type rootResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	Endpoints  endpoints         `json:"endpoints"`
	Parameters map[string]string `json:"parameters"`
}

type endpoints struct {
	Health    string   `json:"health"`
	Metrics   string   `json:"metrics,omitempty"`
	Analytics []string `json:"analytics"`
	Dashboard []string `json:"dashboard"`
}

type healthResponse struct {
	Success   bool    `json:"success"`
	Status    string  `json:"status"`
	Database  string  `json:"database"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type handlers struct {
	db        pinger
	startedAt time.Time
	now       func() time.Time
	root      rootResponse
}

func newHandlers(db pinger, market, overview []Report, metricsEnabled bool) *handlers {
	paths := func(report Report, _ int) string { return report.Path }

	root := rootResponse{
		Success: true,
		Message: ServiceName,
		Version: Version,
		Endpoints: endpoints{
			Health:    "/health",
			Analytics: lo.Map(market, paths),
			Dashboard: lo.Map(overview, paths),
		},
	}
	if metricsEnabled {
		root.Endpoints.Metrics = "/metrics"
	}

	limited := lo.Filter(overview, func(report Report, _ int) bool { return report.DefaultLimit > 0 })
	root.Parameters = lo.Associate(limited, func(report Report) (string, string) {
		return report.Path, limitUsage(report.DefaultLimit)
	})

	return &handlers{
		db:        db,
		startedAt: time.Now(),
		now:       time.Now,
		root:      root,
	}
}

// limitUsage documents that out-of-range or non-numeric limits are rejected, not clamped.
func limitUsage(defaultLimit int) string {
	return fmt.Sprintf("limit: integer from 1 to 100, default %d when missing, empty or 0; "+
		"any other value is rejected with 400", defaultLimit)
}

func (h *handlers) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.root)
}

// Health always answers 200; a failed ping only degrades the status.
func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := healthResponse{
		Success:   true,
		Status:    "healthy",
		Database:  "connected",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Uptime:    h.now().Sub(h.startedAt).Seconds(),
	}

	if err := h.db.Ping(ctx); err != nil {
		requestLogger(r).Warnf("health check ping failed: %v", err)
		response.Status = "degraded"
		response.Database = "unreachable"
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, envelope{
		Success: false,
		Message: "Route not found",
		Path:    r.URL.Path,
	})
}

func (h *handlers) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, envelope{
		Success: false,
		Message: "Method not allowed",
	})
}
