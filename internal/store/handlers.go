package store

import (
	"backend-tripflow/internal/gazetteer"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the place catalog. New places are added to the
// in-memory gazetteer immediately so the next resolution can hit tier 1.
func RegisterRoutes(r fiber.Router, svc *Service, gaz *gazetteer.Gazetteer) {
	r.Get("/", func(c *fiber.Ctx) error {
		places, err := svc.Places(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(places)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req Place
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		place, err := svc.AddPlace(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if gaz != nil {
			gaz.Add(place.Name, place.Lng, place.Lat)
		}
		return c.Status(fiber.StatusCreated).JSON(place)
	})
}
