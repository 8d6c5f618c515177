package branch

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geo"
)

type Branch struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b Branch) Location() geo.Point {
	return geo.Point{Latitude: b.Latitude, Longitude: b.Longitude}
}

func (b Branch) ToResponse() BranchResponse {
	return BranchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		RadiusMeters: b.RadiusMeters,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}
