package server

import (
	"context"
	"log"
	"time"

	"backend-tripflow/internal/config"
	"backend-tripflow/internal/gazetteer"
	"backend-tripflow/internal/geocode"
	"backend-tripflow/internal/itinerary"
	"backend-tripflow/internal/progress"
	"backend-tripflow/internal/store"
	"backend-tripflow/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Stream    *stream.Hub
	Gazetteer *gazetteer.Gazetteer
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:       app,
		Cfg:       cfg,
		DB:        db,
		Redis:     redisClient,
		Stream:    stream.NewHub(redisClient),
		Gazetteer: gazetteer.NewWithDefaults(),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	var external geocode.Client
	if s.Cfg.GoogleMapsAPIKey != "" {
		client, err := geocode.NewMapsClient(s.Cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Printf("maps client unavailable, external geocoding disabled: %v", err)
		} else {
			external = client
		}
	}

	resolver := geocode.NewResolver(s.Gazetteer, external)
	geoOpts := geocode.Options{
		Timeout:    s.Cfg.GeocodeTimeout(),
		BatchPause: s.Cfg.GeocodeBatchPause(),
		Retry:      geocode.RetryPolicy{MaxAttempts: s.Cfg.GeocodeRetries},
	}
	assembler := itinerary.NewService(resolver, geoOpts)

	var plans *store.Service
	if s.DB != nil {
		plans = store.NewService(s.DB)
		seedGazetteer(s.Gazetteer, plans)
	}

	itineraries := s.App.Group("/itineraries")
	if plans != nil {
		itinerary.RegisterRoutes(itineraries, assembler, plans)
		progress.RegisterRoutes(itineraries, progress.NewService(plans, s.Stream), plans)
		store.RegisterRoutes(s.App.Group("/places"), plans, s.Gazetteer)
	} else {
		itinerary.RegisterRoutes(itineraries, assembler, nil)
		progress.RegisterRoutes(itineraries, progress.NewService(nil, s.Stream), nil)
	}

	geocode.RegisterRoutes(s.App.Group("/geocode"), resolver, geoOpts)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// seedGazetteer loads the persistent place catalog into the in-memory
// gazetteer so catalog entries resolve at tier 1. Best-effort.
func seedGazetteer(gaz *gazetteer.Gazetteer, plans *store.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	places, err := plans.Places(ctx)
	if err != nil {
		log.Printf("gazetteer seed skipped: %v", err)
		return
	}
	for _, p := range places {
		gaz.Add(p.Name, p.Lng, p.Lat)
	}
}
