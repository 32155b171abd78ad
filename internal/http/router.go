// Package httpapi assembles the service's public router: the care-team
// endpoints plus the operational surface.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"careteam/internal/careteam/handler"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// NewRouter wires the care-team handler and the operational endpoints.
// checks maps dependency names to their probes; an empty map is valid for
// the in-memory configuration.
func NewRouter(h *handler.Handler, checks map[string]HealthCheck) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealthz(checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Register(r)
	return r
}

func handleHealthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       http.StatusText(status),
			"dependencies": deps,
		})
	}
}
