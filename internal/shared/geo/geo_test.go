package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Tokyo Station (35.681, 139.767) to Nakameguro (35.644, 139.699) ~ 7-8 km
	d := HaversineKm(35.681, 139.767, 35.644, 139.699)
	if d < 5 || d > 10 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestDegreeDistanceKm(t *testing.T) {
	d := DegreeDistanceKm(0, 0, 3, 4)
	if math.Abs(d-5*111) > 1e-9 {
		t.Fatalf("unexpected degree distance: %v", d)
	}
}
