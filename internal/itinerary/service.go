package itinerary

import (
	"context"
	"sort"
	"time"

	"backend-tripflow/internal/gazetteer"
	"backend-tripflow/internal/geocode"
	"backend-tripflow/internal/route"

	"github.com/google/uuid"
)

const (
	defaultCurveEnabled   = true
	defaultCurveIntensity = 0.3
)

// Service assembles raw itinerary text into a validated TripPlan:
// parse → sort → batch geocode → merge → route geometry.
type Service struct {
	resolver *geocode.Resolver
	geoOpts  geocode.Options
}

func NewService(resolver *geocode.Resolver, geoOpts geocode.Options) *Service {
	return &Service{resolver: resolver, geoOpts: geoOpts}
}

// Assemble runs the full pipeline. It fails only when parsing yields zero
// activities; geocoding and route generation degrade instead of failing.
func (s *Service) Assemble(ctx context.Context, raw RawItineraryText, fallback gazetteer.Coordinates) (TripPlan, error) {
	outcome, err := ParseItinerary(raw)
	if err != nil {
		return TripPlan{}, err
	}

	activities := outcome.Activities
	sort.SliceStable(activities, func(i, j int) bool {
		return startMinutes(activities[i].StartTime) < startMinutes(activities[j].StartTime)
	})

	queries := make([]geocode.Query, len(activities))
	for i, act := range activities {
		queries[i] = geocode.Query{RawAddress: act.PlaceName}
	}

	opts := s.geoOpts
	opts.FallbackCoordinates = fallback
	results := s.resolver.ResolveBatch(ctx, queries, opts)

	resolved := make([]ResolvedActivity, len(activities))
	waypoints := make([]route.Waypoint, len(activities))
	for i, act := range activities {
		res := results[i]
		coords := fallback
		if res.Coordinates != nil {
			coords = *res.Coordinates
		}
		resolved[i] = ResolvedActivity{
			ParsedActivity:    act,
			Coordinates:       coords,
			GeocodeConfidence: res.Confidence,
		}
		waypoints[i] = route.Waypoint{
			ID:          act.ID,
			Name:        act.PlaceName,
			Coordinates: coords,
			Kind:        route.KindActivity,
		}
	}

	now := time.Now()
	return TripPlan{
		ID:         uuid.NewString(),
		CityID:     raw.CityID,
		Activities: resolved,
		Route:      route.Generate(waypoints, defaultCurveEnabled, defaultCurveIntensity),
		Status:     StatusPlanning,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func startMinutes(clock string) int {
	min, ok := clockMinutes(clock)
	if !ok {
		return 0
	}
	return min
}
