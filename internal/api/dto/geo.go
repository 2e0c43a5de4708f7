package dto

import (
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
)

type ParseRequest struct {
	Token geo.Token `json:"token"`
	Axis  string    `json:"axis"`
}

type ParseResponse struct {
	Value float64 `json:"value"`
}

type DistanceRequest struct {
	A geo.RawPoint `json:"a"`
	B geo.RawPoint `json:"b"`
}

type DistanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

type ClosestRequest struct {
	Reference  geo.RawPoint   `json:"reference"`
	Candidates []geo.RawPoint `json:"candidates"`
}

// Matched and DistanceKm are null when there are no candidates.
type ClosestResponse struct {
	Matched    *domain.Coordinate `json:"matched"`
	DistanceKm *float64           `json:"distance_km"`
}
