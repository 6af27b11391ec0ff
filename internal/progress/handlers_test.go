package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-tripflow/internal/itinerary"

	"github.com/gofiber/fiber/v2"
)

type fakePlanSource struct {
	plans map[string]itinerary.TripPlan
}

func (f *fakePlanSource) GetPlan(_ context.Context, id string) (itinerary.TripPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return itinerary.TripPlan{}, errors.New("not found")
	}
	return plan, nil
}

func setupProgressApp(svc *Service, plans PlanSource) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/itineraries"), svc, plans)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	return resp
}

func TestStartRoute(t *testing.T) {
	svc := NewService(nil, nil)
	source := &fakePlanSource{plans: map[string]itinerary.TripPlan{"plan-1": samplePlan()}}
	app := setupProgressApp(svc, source)

	resp := doRequest(t, app, http.MethodPost, "/itineraries/plan-1/start")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Status != itinerary.StatusActive || snap.Progress.TotalActivities != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestStartRouteUnknownPlan(t *testing.T) {
	svc := NewService(nil, nil)
	app := setupProgressApp(svc, &fakePlanSource{plans: map[string]itinerary.TripPlan{}})

	resp := doRequest(t, app, http.MethodPost, "/itineraries/missing/start")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestStartRouteConflict(t *testing.T) {
	svc := NewService(nil, nil)
	active := samplePlan()
	active.Status = itinerary.StatusActive
	app := setupProgressApp(svc, &fakePlanSource{plans: map[string]itinerary.TripPlan{"plan-1": active}})

	resp := doRequest(t, app, http.MethodPost, "/itineraries/plan-1/start")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestStartRouteWithoutStore(t *testing.T) {
	svc := NewService(nil, nil)
	app := setupProgressApp(svc, nil)

	resp := doRequest(t, app, http.MethodPost, "/itineraries/plan-1/start")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestAdvanceAndProgressRoutes(t *testing.T) {
	svc := NewService(nil, nil)
	source := &fakePlanSource{plans: map[string]itinerary.TripPlan{"plan-1": samplePlan()}}
	app := setupProgressApp(svc, source)

	doRequest(t, app, http.MethodPost, "/itineraries/plan-1/start")

	resp := doRequest(t, app, http.MethodPost, "/itineraries/plan-1/advance")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/itineraries/plan-1/progress")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Progress.CurrentActivityIndex != 1 {
		t.Fatalf("unexpected index: %d", snap.Progress.CurrentActivityIndex)
	}

	resp = doRequest(t, app, http.MethodPost, "/itineraries/missing/advance")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tracker, got %d", resp.StatusCode)
	}
}

func TestCompleteAndResetRoutes(t *testing.T) {
	svc := NewService(nil, nil)
	source := &fakePlanSource{plans: map[string]itinerary.TripPlan{"plan-1": samplePlan()}}
	app := setupProgressApp(svc, source)

	doRequest(t, app, http.MethodPost, "/itineraries/plan-1/start")

	resp := doRequest(t, app, http.MethodPost, "/itineraries/plan-1/complete")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Status != itinerary.StatusCompleted {
		t.Fatalf("status: %s", snap.Status)
	}

	resp = doRequest(t, app, http.MethodPost, "/itineraries/plan-1/reset")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPost, "/itineraries/missing/reset")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
