package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	monas := Point{Latitude: -6.175392, Longitude: 106.827153}
	bundaranHI := Point{Latitude: -6.195002, Longitude: 106.823005}

	assert.InDelta(t, 0, DistanceMeters(monas, monas), 1e-9)
	// roughly 2.2km apart
	assert.InDelta(t, 2230, DistanceMeters(monas, bundaranHI), 50)
	assert.InDelta(t, DistanceMeters(monas, bundaranHI), DistanceMeters(bundaranHI, monas), 1e-9)
}

func TestDistanceMeters_OneDegreeAtEquator(t *testing.T) {
	d := DistanceMeters(Point{0, 0}, Point{0, 1})
	assert.InDelta(t, 111195, d, 5)
}

func TestWithinRadius(t *testing.T) {
	office := Point{Latitude: -6.2, Longitude: 106.8}
	near := Point{Latitude: -6.2005, Longitude: 106.8} // ~55m
	far := Point{Latitude: -6.21, Longitude: 106.8}     // ~1.1km

	assert.True(t, WithinRadius(office, near, 100))
	assert.False(t, WithinRadius(office, far, 100))
	assert.True(t, WithinRadius(office, office, 0))
}
