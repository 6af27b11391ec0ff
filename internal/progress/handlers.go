package progress

import (
	"context"
	"errors"

	"backend-tripflow/internal/itinerary"

	"github.com/gofiber/fiber/v2"
)

// PlanSource loads assembled plans for progress commands.
type PlanSource interface {
	GetPlan(ctx context.Context, id string) (itinerary.TripPlan, error)
}

// RegisterRoutes mounts progress commands under the itinerary group.
func RegisterRoutes(r fiber.Router, svc *Service, plans PlanSource) {
	r.Post("/:id/start", func(c *fiber.Ctx) error {
		if plans == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "plan storage unavailable")
		}
		plan, err := plans.GetPlan(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		snap, err := svc.Start(c.Context(), plan)
		if err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.JSON(snap)
	})

	r.Post("/:id/advance", func(c *fiber.Ctx) error {
		snap, err := svc.Advance(c.Context(), c.Params("id"))
		if err != nil {
			return trackerError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/:id/complete", func(c *fiber.Ctx) error {
		snap, err := svc.Complete(c.Context(), c.Params("id"))
		if err != nil {
			return trackerError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/:id/reset", func(c *fiber.Ctx) error {
		snap, err := svc.Reset(c.Context(), c.Params("id"))
		if err != nil {
			return trackerError(err)
		}
		return c.JSON(snap)
	})

	r.Get("/:id/progress", func(c *fiber.Ctx) error {
		snap, err := svc.Current(c.Params("id"))
		if err != nil {
			return trackerError(err)
		}
		return c.JSON(snap)
	})
}

func trackerError(err error) error {
	if errors.Is(err, ErrNoTracker) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusConflict, err.Error())
}
