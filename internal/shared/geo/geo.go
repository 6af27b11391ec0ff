package geo

import "math"

const earthRadiusKm = 6371.0

// KmPerDegree is the flat approximation used for route totals: one degree
// of arc is treated as 111 km.
const KmPerDegree = 111.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DegreeDistance returns the Euclidean distance between two points in
// coordinate-degree space.
func DegreeDistance(lng1, lat1, lng2, lat2 float64) float64 {
	return math.Hypot(lng2-lng1, lat2-lat1)
}

// DegreeDistanceKm approximates the distance between two points as the
// degree-space distance scaled by KmPerDegree.
func DegreeDistanceKm(lng1, lat1, lng2, lat2 float64) float64 {
	return DegreeDistance(lng1, lat1, lng2, lat2) * KmPerDegree
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
