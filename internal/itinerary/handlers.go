package itinerary

import (
	"context"
	"errors"
	"log"

	"backend-tripflow/internal/gazetteer"

	"github.com/gofiber/fiber/v2"
)

// PlanStore is the persistence slice the handlers need; the store service
// satisfies it. A nil store keeps the pipeline usable without a database.
type PlanStore interface {
	SavePlan(ctx context.Context, plan TripPlan) error
	GetPlan(ctx context.Context, id string) (TripPlan, error)
}

type assembleRequest struct {
	Text        string   `json:"text"`
	Language    string   `json:"language"`
	CityID      string   `json:"city_id"`
	FallbackLng *float64 `json:"fallback_lng"`
	FallbackLat *float64 `json:"fallback_lat"`
}

func RegisterRoutes(r fiber.Router, svc *Service, plans PlanStore) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req assembleRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "text required")
		}

		fallback := gazetteer.Coordinates{}
		if req.FallbackLng != nil && req.FallbackLat != nil {
			fallback = gazetteer.Coordinates{Lng: *req.FallbackLng, Lat: *req.FallbackLat}
		}

		plan, err := svc.Assemble(c.Context(), RawItineraryText{
			Text:     req.Text,
			Language: req.Language,
			CityID:   req.CityID,
		}, fallback)
		if err != nil {
			if errors.Is(err, ErrEmptyItinerary) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if plans != nil {
			// persistence is best-effort: the plan is still returned
			if err := plans.SavePlan(c.Context(), plan); err != nil {
				log.Printf("itinerary: save plan %s: %v", plan.ID, err)
			}
		}
		return c.Status(fiber.StatusCreated).JSON(plan)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		if plans == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "plan storage unavailable")
		}
		plan, err := plans.GetPlan(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		return c.JSON(plan)
	})
}
