package store

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-tripflow/internal/gazetteer"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func setupPlacesApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface, *gazetteer.Gazetteer) {
	t.Helper()
	svc, mock := newMockService(t)
	gaz := gazetteer.New()

	app := fiber.New()
	RegisterRoutes(app.Group("/places"), svc, gaz)
	return app, mock, gaz
}

func TestListPlaces(t *testing.T) {
	app, mock, _ := setupPlacesApp(t)

	mock.ExpectQuery("SELECT id, name, lng, lat, created_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "lng", "lat", "created_at"}).
			AddRow("p1", "浅草寺", 139.7967, 35.7148, time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/places/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(places) != 1 || places[0].Name != "浅草寺" {
		t.Fatalf("unexpected places: %+v", places)
	}
}

func TestCreatePlaceSeedsGazetteer(t *testing.T) {
	app, mock, gaz := setupPlacesApp(t)

	mock.ExpectQuery("INSERT INTO places").
		WithArgs(pgxmock.AnyArg(), "东京塔", 139.7454, 35.6586).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(Place{Name: "东京塔", Lng: 139.7454, Lat: 35.6586})
	req := httptest.NewRequest(http.MethodPost, "/places/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	if _, ok := gaz.Lookup("东京塔"); !ok {
		t.Fatalf("expected new place in gazetteer")
	}
}

func TestCreatePlaceMissingName(t *testing.T) {
	app, _, _ := setupPlacesApp(t)

	body, _ := json.Marshal(Place{Lng: 1, Lat: 2})
	req := httptest.NewRequest(http.MethodPost, "/places/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
