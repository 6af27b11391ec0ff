package store

import (
	"context"
	"encoding/json"

	"backend-tripflow/internal/db"
	"backend-tripflow/internal/itinerary"

	"github.com/google/uuid"
)

// Service persists assembled trip plans and the gazetteer place catalog.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) SavePlan(ctx context.Context, plan itinerary.TripPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trip_plans (id, city_id, status, payload, archived, created_at, updated_at)
		VALUES ($1,$2,$3,$4,false,$5,$6)
	`, plan.ID, plan.CityID, string(plan.Status), payload, plan.CreatedAt, plan.UpdatedAt)
	return err
}

func (s *Service) GetPlan(ctx context.Context, id string) (itinerary.TripPlan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT payload, status, updated_at
		FROM trip_plans WHERE id=$1
	`, id)

	var payload []byte
	var status string
	var plan itinerary.TripPlan
	if err := row.Scan(&payload, &status, &plan.UpdatedAt); err != nil {
		return itinerary.TripPlan{}, err
	}
	updatedAt := plan.UpdatedAt
	if err := json.Unmarshal(payload, &plan); err != nil {
		return itinerary.TripPlan{}, err
	}
	// the status column is authoritative after progress transitions
	plan.Status = itinerary.Status(status)
	plan.UpdatedAt = updatedAt
	return plan, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status itinerary.Status) error {
	_, err := s.db.Exec(ctx, `
		UPDATE trip_plans SET status=$2, updated_at=now() WHERE id=$1
	`, id, string(status))
	return err
}

// ArchivePlan marks a completed plan as archived.
func (s *Service) ArchivePlan(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE trip_plans SET status=$2, archived=true, updated_at=now() WHERE id=$1
	`, id, string(itinerary.StatusCompleted))
	return err
}

func (s *Service) AddPlace(ctx context.Context, input Place) (Place, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO places (id, name, lng, lat)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Name, input.Lng, input.Lat)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Place{}, err
	}
	return input, nil
}

func (s *Service) Places(ctx context.Context) ([]Place, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, lng, lat, created_at
		FROM places
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Lng, &p.Lat, &p.CreatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, nil
}
