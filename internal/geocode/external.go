package geocode

import (
	"context"

	"backend-tripflow/internal/gazetteer"

	"googlemaps.github.io/maps"
)

// Client is the external geocoding collaborator: one address in, best-match
// coordinates and a [0,1] relevance score out. ok=false is a clean miss.
type Client interface {
	Geocode(ctx context.Context, address string) (coords gazetteer.Coordinates, relevance float64, ok bool, err error)
}

// MapsClient adapts the Google Maps geocoding API to the Client interface.
type MapsClient struct {
	client *maps.Client
}

func NewMapsClient(apiKey string) (*MapsClient, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &MapsClient{client: c}, nil
}

func (m *MapsClient) Geocode(ctx context.Context, address string) (gazetteer.Coordinates, float64, bool, error) {
	results, err := m.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return gazetteer.Coordinates{}, 0, false, err
	}
	if len(results) == 0 {
		return gazetteer.Coordinates{}, 0, false, nil
	}

	loc := results[0].Geometry.Location
	// The geocoding API carries no relevance score; 0 lets the resolver
	// apply its default external confidence.
	return gazetteer.Coordinates{Lng: loc.Lng, Lat: loc.Lat}, 0, true, nil
}
