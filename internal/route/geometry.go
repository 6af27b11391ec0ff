package route

import (
	"math"

	"backend-tripflow/internal/gazetteer"
	"backend-tripflow/internal/shared/geo"
)

type WaypointKind string

const (
	KindActivity WaypointKind = "activity"
	KindRest     WaypointKind = "rest"
)

type Waypoint struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Coordinates gazetteer.Coordinates `json:"coordinates"`
	Kind        WaypointKind          `json:"kind"`
}

type Geometry struct {
	Waypoints       []Waypoint              `json:"waypoints"`
	Path            []gazetteer.Coordinates `json:"path"`
	TotalDistanceKm float64                 `json:"total_distance_km"`
	CurveEnabled    bool                    `json:"curve_enabled"`
	CurveIntensity  float64                 `json:"curve_intensity"`
}

// Curve constants, chosen empirically in the original for visual smoothness
// and kept as contract values.
const (
	curveOffsetFactor = 0.15
	curveOffsetClamp  = 1.5
	minSegmentSteps   = 6
	stepsPerDegree    = 8
)

// Generate builds a rendering-ready path through the waypoints. With the
// curve disabled, or fewer than two waypoints, the path is the straight
// polyline. With it enabled, every segment bulges perpendicular to its
// direction with an eased weight that is zero at both endpoints, so the path
// always starts and ends exactly on the first and last waypoints. The output
// is deterministic for identical inputs.
func Generate(waypoints []Waypoint, curveEnabled bool, intensity float64) Geometry {
	g := Geometry{
		Waypoints:       waypoints,
		CurveEnabled:    curveEnabled,
		CurveIntensity:  intensity,
		TotalDistanceKm: totalDistanceKm(waypoints),
	}

	if !curveEnabled || len(waypoints) < 2 {
		g.Path = straightPath(waypoints)
		return g
	}

	path := make([]gazetteer.Coordinates, 0, len(waypoints)*minSegmentSteps)
	for i := 0; i < len(waypoints)-1; i++ {
		from := waypoints[i].Coordinates
		to := waypoints[i+1].Coordinates
		segment := curvedSegment(from, to, intensity, i == 0)
		path = append(path, segment...)
	}
	g.Path = path
	return g
}

// curvedSegment samples the from→to segment with a perpendicular offset.
// The first sample (t=0) is skipped for every segment but the first, since
// it duplicates the previous segment's end point.
func curvedSegment(from, to gazetteer.Coordinates, intensity float64, includeStart bool) []gazetteer.Coordinates {
	dLng := to.Lng - from.Lng
	dLat := to.Lat - from.Lat
	dist := math.Hypot(dLng, dLat)

	steps := int(math.Floor(dist * stepsPerDegree))
	if steps < minSegmentSteps {
		steps = minSegmentSteps
	}

	// perpendicular unit vector: direction rotated 90 degrees
	var perpLng, perpLat float64
	if dist > 0 {
		perpLng = -dLat / dist
		perpLat = dLng / dist
	}
	offset := math.Min(dist*curveOffsetFactor*intensity, curveOffsetClamp*intensity)

	out := make([]gazetteer.Coordinates, 0, steps+1)
	start := 1
	if includeStart {
		start = 0
	}
	for s := start; s <= steps; s++ {
		t := float64(s) / float64(steps)
		weight := easeBulge(t)
		out = append(out, gazetteer.Coordinates{
			Lng: from.Lng + dLng*t + perpLng*offset*weight,
			Lat: from.Lat + dLat*t + perpLat*offset*weight,
		})
	}
	return out
}

// easeBulge is zero at t=0 and t=1 and peaks near the midpoint, with an
// asymmetric cubic falloff.
func easeBulge(t float64) float64 {
	return math.Sin(t*math.Pi) * (1 - math.Pow(math.Abs(2*t-1), 3))
}

func straightPath(waypoints []Waypoint) []gazetteer.Coordinates {
	path := make([]gazetteer.Coordinates, len(waypoints))
	for i, wp := range waypoints {
		path[i] = wp.Coordinates
	}
	return path
}

// totalDistanceKm sums pairwise waypoint distances, independent of path
// sampling density.
func totalDistanceKm(waypoints []Waypoint) float64 {
	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		a := waypoints[i].Coordinates
		b := waypoints[i+1].Coordinates
		total += geo.DegreeDistanceKm(a.Lng, a.Lat, b.Lng, b.Lat)
	}
	return total
}
