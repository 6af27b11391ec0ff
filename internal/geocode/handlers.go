package geocode

import (
	"backend-tripflow/internal/gazetteer"

	"github.com/gofiber/fiber/v2"
)

type batchRequest struct {
	Addresses   []string `json:"addresses"`
	FallbackLng float64  `json:"fallback_lng"`
	FallbackLat float64  `json:"fallback_lat"`
}

// RegisterRoutes exposes the resolver directly, mainly for debugging the
// tiered fallback behaviour against a live gazetteer.
func RegisterRoutes(r fiber.Router, resolver *Resolver, opts Options) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req batchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(req.Addresses) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "addresses required")
		}

		queries := make([]Query, len(req.Addresses))
		for i, addr := range req.Addresses {
			queries[i] = Query{RawAddress: addr}
		}
		callOpts := opts
		callOpts.FallbackCoordinates = gazetteer.Coordinates{Lng: req.FallbackLng, Lat: req.FallbackLat}

		return c.JSON(resolver.ResolveBatch(c.Context(), queries, callOpts))
	})
}
