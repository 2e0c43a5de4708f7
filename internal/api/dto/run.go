package dto

import "geo-match-service/internal/geo"

// PairsRequest carries either an inline Target or the name of a stored reference set.
type PairsRequest struct {
	Source    []geo.RawPoint `json:"source"`
	Target    []geo.RawPoint `json:"target"`
	TargetSet string         `json:"target_set"`
}
