package progress

import (
	"backend-tripflow/internal/gazetteer"
	"backend-tripflow/internal/itinerary"
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodTired   Mood = "tired"
	MoodCurious Mood = "curious"
	MoodRelaxed Mood = "relaxed"
)

// TripProgress tracks advancement through one active plan.
// CurrentActivityIndex stays within [0, TotalActivities]; the completed id
// set only ever contains ids of activities before the current index.
type TripProgress struct {
	CurrentActivityIndex      int      `json:"current_activity_index"`
	CompletedActivityIDs      []string `json:"completed_activity_ids"`
	TotalActivities           int      `json:"total_activities"`
	ElapsedMinutes            int      `json:"elapsed_minutes"`
	EstimatedRemainingMinutes int      `json:"estimated_remaining_minutes"`
}

// CompanionState is the travel companion's mood/energy model, mutated only
// by tracker transitions. Energy drains and experience grows monotonically
// as activities complete.
type CompanionState struct {
	Mood       Mood                  `json:"mood"`
	Energy     int                   `json:"energy"` // 0-100
	Experience int                   `json:"experience"`
	Location   gazetteer.Coordinates `json:"location"`
	TraveledKm float64               `json:"traveled_km"`
}

// Snapshot is the live state emitted after every tracker command; the
// rendering layer consumes it directly.
type Snapshot struct {
	PlanID    string           `json:"plan_id"`
	Status    itinerary.Status `json:"status"`
	Progress  TripProgress     `json:"progress"`
	Companion CompanionState   `json:"companion"`
}

const (
	energyCostPerActivity = 5
	experiencePerActivity = 10
	lowEnergyThreshold    = 20
)
