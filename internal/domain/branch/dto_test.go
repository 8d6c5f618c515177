package branch

import (
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreateBranchRequest_Validate(t *testing.T) {
	req := CreateBranchRequest{Name: "  Jakarta HQ ", Latitude: ptr(-6.2), Longitude: ptr(106.8)}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Jakarta HQ", req.Name)
	assert.Equal(t, DefaultRadiusMeters, req.RadiusMeters)

	bad := CreateBranchRequest{Latitude: ptr(91.0), RadiusMeters: -5}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "latitude")
	assert.Contains(t, fields, "longitude")
	assert.Contains(t, fields, "radius_meters")
}

func TestUpdateBranchRequest_Apply(t *testing.T) {
	b := Branch{Name: "Old", Latitude: 1, Longitude: 2, RadiusMeters: 50}
	req := UpdateBranchRequest{
		ID:           "123e4567-e89b-12d3-a456-426614174000",
		Name:         ptr(" New "),
		RadiusMeters: ptr(250),
	}
	require.NoError(t, req.Validate())

	got := req.Apply(b)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 250, got.RadiusMeters)
	assert.Equal(t, 1.0, got.Latitude)
}

func TestUpdateBranchRequest_ValidateBounds(t *testing.T) {
	req := UpdateBranchRequest{ID: "nope", Longitude: ptr(200.0), RadiusMeters: ptr(0)}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Len(t, verrs, 3)
}
