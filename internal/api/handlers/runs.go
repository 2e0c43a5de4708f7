package handlers

import (
	"errors"
	"geo-match-service/internal/api/dto"
	"geo-match-service/internal/ports"
	"geo-match-service/internal/services"
	"log"
	"net/http"
	"strings"
)

type RunHandler struct {
	Runner *services.MatchRunner
	Points GeoHandler
}

// Pairs matches every source point against the target and records the run.
func (h *RunHandler) Pairs(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PairsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	targetSet := strings.TrimSpace(req.TargetSet)
	if targetSet != "" && len(req.Target) > 0 {
		writeError(w, r, http.StatusBadRequest, "provide either target or target_set, not both")
		return
	}
	if targetSet != "" && h.Runner.References == nil {
		writeError(w, r, http.StatusBadRequest, "target_set is not available: no reference store configured")
		return
	}

	source, ok := h.Points.pointSet(w, r, "source", req.Source)
	if !ok {
		return
	}
	target, ok := h.Points.pointSet(w, r, "target", req.Target)
	if !ok {
		return
	}

	run, err := h.Runner.Run(r.Context(), services.RunMatchRequest{
		Source:    source,
		Target:    target,
		TargetSet: targetSet,
	})
	if err != nil {
		log.Printf("pair sets failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, run)
}

// Get returns a previously computed run by id.
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "run id is required")
		return
	}

	run, err := h.Runner.GetRun(r.Context(), id)
	if errors.Is(err, ports.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: run_id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, run)
}
