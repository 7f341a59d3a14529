package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two
// points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// SpanKm is the diagonal extent of a lat/lon bounding box in kilometers.
// The dashboard uses it to reject queries covering an implausibly large
// area before they reach the platform.
func SpanKm(latMin, lonMin, latMax, lonMax float64) float64 {
	return HaversineDistance(latMin, lonMin, latMax, lonMax) / 1000.0
}
