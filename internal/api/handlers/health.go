package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// HealthCheck probes one optional dependency (database, cache, ...).
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]HealthCheck
}

// Health reports liveness plus the state of each configured dependency.
// Any failing check turns the response into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	res := map[string]any{"status": "ok"}
	if status != http.StatusOK {
		res["status"] = "degraded"
	}
	if len(deps) > 0 {
		res["dependencies"] = deps
	}
	writeJSON(w, r, status, res)
}
