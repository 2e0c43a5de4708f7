package handlers

import (
	"errors"
	"fmt"
	"geo-match-service/internal/api/dto"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
	"geo-match-service/internal/services"
	"net/http"
)

// GeoHandler serves the stateless coordinate endpoints.
type GeoHandler struct {
	// MaxPoints caps candidate lists; zero means DefaultMaxPoints.
	MaxPoints int
}

const DefaultMaxPoints = 10000

func (h *GeoHandler) maxPoints() int {
	if h.MaxPoints > 0 {
		return h.MaxPoints
	}
	return DefaultMaxPoints
}

// Parse converts one raw token on the requested axis.
func (h *GeoHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ParseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	axis, err := domain.ParseAxis(req.Axis)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	v, err := geo.ParseAxis(string(req.Token), axis)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ParseResponse{Value: v})
}

// Distance returns the great-circle distance between two points in kilometres.
func (h *GeoHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DistanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := req.A.Coordinate()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "a: "+err.Error())
		return
	}
	b, err := req.B.Coordinate()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "b: "+err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{DistanceKm: geo.Distance(a, b)})
}

// Closest finds the nearest candidate to the reference point.
func (h *GeoHandler) Closest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ClosestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ref, err := req.Reference.Coordinate()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "reference: "+err.Error())
		return
	}

	candidates, ok := h.pointSet(w, r, "candidates", req.Candidates)
	if !ok {
		return
	}

	var res dto.ClosestResponse
	if closest, d, found := services.FindClosest(ref, candidates); found {
		res.Matched = &closest
		res.DistanceKm = &d
	}
	writeJSON(w, r, http.StatusOK, res)
}

// pointSet converts a request list, writing a 400 that names the first bad index.
func (h *GeoHandler) pointSet(w http.ResponseWriter, r *http.Request, field string, raw []geo.RawPoint) (domain.CoordinateSet, bool) {
	if len(raw) > h.maxPoints() {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("%s: at most %d points allowed", field, h.maxPoints()))
		return nil, false
	}

	set, err := geo.Coordinates(raw)
	if err != nil {
		var pe *geo.PointError
		if errors.As(err, &pe) {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("%s[%d]: %v", field, pe.Index, pe.Err))
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, field+": "+err.Error())
		return nil, false
	}
	return set, true
}
