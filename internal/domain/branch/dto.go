package branch

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// DefaultRadiusMeters applies when a branch is created without a radius.
const DefaultRadiusMeters = 100

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	Name         string   `json:"name"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters int      `json:"radius_meters,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	// Coordinates
	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude is required"})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude is required"})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if r.RadiusMeters == 0 {
		r.RadiusMeters = DefaultRadiusMeters
	}
	if r.RadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateBranchRequest represents the request structure for updating a branch.
type UpdateBranchRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs.Add("radius_meters", "radius_meters must be positive")
	}

	return errs.Err()
}

// Apply copies the set fields of r onto b.
func (r UpdateBranchRequest) Apply(b Branch) Branch {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		b.Address = r.Address
	}
	if r.Latitude != nil {
		b.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		b.Longitude = *r.Longitude
	}
	if r.RadiusMeters != nil {
		b.RadiusMeters = *r.RadiusMeters
	}
	return b
}
