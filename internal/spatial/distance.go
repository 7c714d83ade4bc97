package spatial

import "github.com/golang/geo/s2"

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	MetersPerMile     = 1609.34
)

// HaversineDistance calculates the great-circle distance between two points
// in meters on a spherical-earth model.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// MetersToMiles converts a distance in meters to statute miles.
func MetersToMiles(meters float64) float64 {
	return meters / MetersPerMile
}
