package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakePlanStore struct {
	saved   []TripPlan
	plans   map[string]TripPlan
	saveErr error
}

func (f *fakePlanStore) SavePlan(_ context.Context, plan TripPlan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, plan)
	return nil
}

func (f *fakePlanStore) GetPlan(_ context.Context, id string) (TripPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return TripPlan{}, errors.New("not found")
	}
	return plan, nil
}

func setupHandlerApp(plans PlanStore) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/itineraries"), testAssembler(), plans)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	return resp
}

func TestCreateItinerary(t *testing.T) {
	store := &fakePlanStore{}
	app := setupHandlerApp(store)

	resp := postJSON(t, app, "/itineraries/", map[string]any{
		"text":         "08:00-09:00 · 中目黑河畔 [自然] 散步",
		"city_id":      "tokyo",
		"fallback_lng": 139.69,
		"fallback_lat": 35.68,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var plan TripPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.Status != StatusPlanning || len(plan.Activities) != 1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected plan to be persisted")
	}
}

func TestCreateItineraryMissingText(t *testing.T) {
	app := setupHandlerApp(nil)

	resp := postJSON(t, app, "/itineraries/", map[string]any{"city_id": "tokyo"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateItineraryUnparseable(t *testing.T) {
	app := setupHandlerApp(nil)

	resp := postJSON(t, app, "/itineraries/", map[string]any{"text": "no separators anywhere"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCreateItinerarySurvivesSaveFailure(t *testing.T) {
	store := &fakePlanStore{saveErr: errors.New("db down")}
	app := setupHandlerApp(store)

	resp := postJSON(t, app, "/itineraries/", map[string]any{
		"text": "08:00-09:00 · 中目黑河畔 [自然] 散步",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 despite save failure, got %d", resp.StatusCode)
	}
}

func TestGetItinerary(t *testing.T) {
	store := &fakePlanStore{plans: map[string]TripPlan{
		"plan-1": {ID: "plan-1", Status: StatusPlanning},
	}}
	app := setupHandlerApp(store)

	req := httptest.NewRequest(http.MethodGet, "/itineraries/plan-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/itineraries/missing", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetItineraryWithoutStore(t *testing.T) {
	app := setupHandlerApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/itineraries/plan-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}
