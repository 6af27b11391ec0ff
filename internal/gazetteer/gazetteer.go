package gazetteer

import (
	"strings"
	"sync"
)

// Coordinates is a lng/lat pair, matching the order map renderers expect.
type Coordinates struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Gazetteer is a static lookup table from known place names to coordinates.
// Lookups never touch the network; the geocode resolver consults it before
// any external call.
type Gazetteer struct {
	mu      sync.RWMutex
	entries map[string]Coordinates
	keys    []string
}

func New() *Gazetteer {
	return &Gazetteer{entries: map[string]Coordinates{}}
}

// NewWithDefaults returns a gazetteer pre-seeded with the built-in place set.
func NewWithDefaults() *Gazetteer {
	g := New()
	for name, c := range defaultEntries {
		g.Add(name, c.Lng, c.Lat)
	}
	return g
}

func (g *Gazetteer) Add(name string, lng, lat float64) {
	key := normalize(name)
	if key == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.entries[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.entries[key] = Coordinates{Lng: lng, Lat: lat}
}

// Lookup returns the coordinates for an exact, normalized match.
func (g *Gazetteer) Lookup(name string) (Coordinates, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.entries[normalize(name)]
	return c, ok
}

// FuzzyLookup matches by substring containment in either direction and
// returns the matched key alongside its coordinates. Insertion order breaks
// ties so repeated lookups stay deterministic.
func (g *Gazetteer) FuzzyLookup(name string) (string, Coordinates, bool) {
	key := normalize(name)
	if key == "" {
		return "", Coordinates{}, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, candidate := range g.keys {
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return candidate, g.entries[candidate], true
		}
	}
	return "", Coordinates{}, false
}

func (g *Gazetteer) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
