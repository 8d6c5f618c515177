package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius reports whether p lies within radiusMeters of center.
func WithinRadius(center, p Point, radiusMeters float64) bool {
	return DistanceMeters(center, p) <= radiusMeters
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
