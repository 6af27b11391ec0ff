package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"backend-tripflow/internal/itinerary"
	"backend-tripflow/internal/shared/geo"
	"backend-tripflow/internal/stream"
)

var ErrNoTracker = errors.New("no tracker for plan")

// PlanStore is the slice of plan persistence the tracker needs; the store
// service satisfies it. A nil store disables persistence.
type PlanStore interface {
	UpdateStatus(ctx context.Context, id string, status itinerary.Status) error
	ArchivePlan(ctx context.Context, id string) error
}

// tracker holds the live state for one plan. Commands are serialized by the
// owning Service; the tracker itself does no locking.
type tracker struct {
	plan      itinerary.TripPlan
	progress  TripProgress
	companion CompanionState
}

// Service owns one tracker per active plan and serializes all progress
// commands. Plan status changes are mirrored to the store and every command
// broadcasts a fresh snapshot over the stream hub; both collaborators are
// optional and best-effort.
type Service struct {
	mu       sync.Mutex
	trackers map[string]*tracker
	store    PlanStore
	hub      *stream.Hub
}

func NewService(st PlanStore, hub *stream.Hub) *Service {
	return &Service{
		trackers: map[string]*tracker{},
		store:    st,
		hub:      hub,
	}
}

// Start activates a plan and resets its progress: index 0, empty completed
// set, companion excited at full energy.
func (s *Service) Start(ctx context.Context, plan itinerary.TripPlan) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := plan.Transition(itinerary.StatusActive); err != nil {
		return Snapshot{}, err
	}

	total := 0
	for _, act := range plan.Activities {
		total += act.DurationMinutes
	}

	t := &tracker{
		plan: plan,
		progress: TripProgress{
			CompletedActivityIDs:      []string{},
			TotalActivities:           len(plan.Activities),
			EstimatedRemainingMinutes: total,
		},
		companion: CompanionState{
			Mood:   MoodExcited,
			Energy: 100,
		},
	}
	if len(plan.Activities) > 0 {
		t.companion.Location = plan.Activities[0].Coordinates
	}
	s.trackers[plan.ID] = t

	s.persistStatus(ctx, plan.ID, itinerary.StatusActive)
	return s.broadcast(t), nil
}

// Advance completes the current activity. Past the end it is a no-op, not an
// error. Completing the final activity finalizes the plan.
func (s *Service) Advance(ctx context.Context, planID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[planID]
	if !ok {
		return Snapshot{}, ErrNoTracker
	}
	if t.progress.CurrentActivityIndex >= t.progress.TotalActivities || t.plan.Finalized() {
		return s.snapshot(t), nil
	}

	act := t.plan.Activities[t.progress.CurrentActivityIndex]
	t.progress.CompletedActivityIDs = append(t.progress.CompletedActivityIDs, act.ID)
	t.progress.CurrentActivityIndex++
	t.progress.ElapsedMinutes += act.DurationMinutes
	t.progress.EstimatedRemainingMinutes -= act.DurationMinutes
	if t.progress.EstimatedRemainingMinutes < 0 {
		t.progress.EstimatedRemainingMinutes = 0
	}

	t.companion.Energy -= energyCostPerActivity
	if t.companion.Energy < 0 {
		t.companion.Energy = 0
	}
	t.companion.Experience += experiencePerActivity
	t.companion.TraveledKm += geo.HaversineKm(
		t.companion.Location.Lat, t.companion.Location.Lng,
		act.Coordinates.Lat, act.Coordinates.Lng,
	)
	t.companion.Location = act.Coordinates
	t.companion.Mood = moodFor(t.companion.Energy, act.Theme)

	if t.progress.CurrentActivityIndex == t.progress.TotalActivities {
		if err := t.plan.Transition(itinerary.StatusCompleted); err == nil {
			s.archive(ctx, planID)
		}
	}

	return s.broadcast(t), nil
}

// Complete finalizes the plan explicitly and zeroes the progress fields.
func (s *Service) Complete(ctx context.Context, planID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[planID]
	if !ok {
		return Snapshot{}, ErrNoTracker
	}
	if !t.plan.Finalized() {
		if err := t.plan.Transition(itinerary.StatusCompleted); err != nil {
			return Snapshot{}, err
		}
		s.archive(ctx, planID)
	}

	t.progress = TripProgress{
		CompletedActivityIDs: []string{},
		TotalActivities:      t.progress.TotalActivities,
	}
	return s.broadcast(t), nil
}

// Reset abandons the plan: status becomes cancelled, nothing is archived.
func (s *Service) Reset(ctx context.Context, planID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[planID]
	if !ok {
		return Snapshot{}, ErrNoTracker
	}
	if !t.plan.Finalized() {
		if err := t.plan.Transition(itinerary.StatusCancelled); err != nil {
			return Snapshot{}, err
		}
		s.persistStatus(ctx, planID, itinerary.StatusCancelled)
	}

	t.progress = TripProgress{
		CompletedActivityIDs: []string{},
		TotalActivities:      t.progress.TotalActivities,
	}
	return s.broadcast(t), nil
}

// Current returns the live snapshot without mutating anything.
func (s *Service) Current(planID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[planID]
	if !ok {
		return Snapshot{}, ErrNoTracker
	}
	return s.snapshot(t), nil
}

func (s *Service) snapshot(t *tracker) Snapshot {
	progress := t.progress
	progress.CompletedActivityIDs = append([]string{}, t.progress.CompletedActivityIDs...)
	return Snapshot{
		PlanID:    t.plan.ID,
		Status:    t.plan.Status,
		Progress:  progress,
		Companion: t.companion,
	}
}

func (s *Service) broadcast(t *tracker) Snapshot {
	snap := s.snapshot(t)
	if s.hub != nil {
		if payload, err := json.Marshal(snap); err == nil {
			s.hub.Broadcast(t.plan.ID, payload)
		}
	}
	return snap
}

func (s *Service) persistStatus(ctx context.Context, planID string, status itinerary.Status) {
	if s.store == nil {
		return
	}
	if err := s.store.UpdateStatus(ctx, planID, status); err != nil {
		log.Printf("progress: persist status for %s: %v", planID, err)
	}
}

func (s *Service) archive(ctx context.Context, planID string) {
	if s.store == nil {
		return
	}
	if err := s.store.ArchivePlan(ctx, planID); err != nil {
		log.Printf("progress: archive plan %s: %v", planID, err)
	}
}

func moodFor(energy int, theme string) Mood {
	if energy <= lowEnergyThreshold {
		return MoodTired
	}
	switch theme {
	case "nature", "relax":
		return MoodRelaxed
	case "culture", "history", "art":
		return MoodCurious
	default:
		return MoodHappy
	}
}
