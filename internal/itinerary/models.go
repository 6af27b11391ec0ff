package itinerary

import (
	"errors"
	"time"

	"backend-tripflow/internal/gazetteer"
	"backend-tripflow/internal/route"
)

var (
	// ErrEmptyItinerary is the only fatal pipeline error: the raw text
	// yielded zero activities even after degraded parsing.
	ErrEmptyItinerary = errors.New("itinerary text yielded no activities")

	// ErrPlanFinalized is returned when a terminal plan is asked to change.
	ErrPlanFinalized = errors.New("trip plan is in a terminal state")

	// ErrInvalidTransition is returned for out-of-order status changes.
	ErrInvalidTransition = errors.New("invalid trip plan status transition")
)

// RawItineraryText is the immutable pipeline input: an opaque text blob from
// the generative text source plus context hints.
type RawItineraryText struct {
	Text     string `json:"text"`
	Language string `json:"language"` // "zh" or "en"
	CityID   string `json:"city_id"`
}

// ParsedActivity is one itinerary item before geocoding.
type ParsedActivity struct {
	ID              string   `json:"id"`
	StartTime       string   `json:"start_time"` // HH:MM, 24h
	DurationMinutes int      `json:"duration_minutes"`
	PlaceName       string   `json:"place_name"`
	Tags            []string `json:"tags"`
	Description     string   `json:"description"`
	Theme           string   `json:"theme"`
}

// ResolvedActivity is a ParsedActivity enriched with coordinates. The merge
// produces a new value; the parsed activity is never mutated in place.
type ResolvedActivity struct {
	ParsedActivity
	Coordinates       gazetteer.Coordinates `json:"coordinates"`
	GeocodeConfidence float64               `json:"geocode_confidence"`
}

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// TripPlan is the assembled, validated output of the pipeline. Activities
// are sorted ascending by start time and never reordered or deleted after
// assembly; only status and updated_at change afterwards.
type TripPlan struct {
	ID         string             `json:"id"`
	CityID     string             `json:"city_id"`
	Activities []ResolvedActivity `json:"activities"`
	Route      route.Geometry     `json:"route"`
	Status     Status             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Finalized reports whether the plan reached a terminal state.
func (p *TripPlan) Finalized() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}

// Transition enforces the planning → active → {completed, cancelled} state
// machine. Cancelling is allowed from any non-terminal state.
func (p *TripPlan) Transition(next Status) error {
	if p.Finalized() {
		return ErrPlanFinalized
	}
	switch next {
	case StatusActive:
		if p.Status != StatusPlanning {
			return ErrInvalidTransition
		}
	case StatusCompleted:
		if p.Status != StatusActive {
			return ErrInvalidTransition
		}
	case StatusCancelled:
		// any non-terminal state may be abandoned
	default:
		return ErrInvalidTransition
	}
	p.Status = next
	p.UpdatedAt = time.Now()
	return nil
}
