package server

import (
	"backend-storywalk/internal/auth"
	"backend-storywalk/internal/config"
	"backend-storywalk/internal/geocode"
	"backend-storywalk/internal/prefs"
	"backend-storywalk/internal/route"
	"backend-storywalk/internal/story"
	"backend-storywalk/internal/stream"
	"backend-storywalk/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	storySvc := story.NewService(s.DB, story.NewGeminiGenerator(s.Cfg.GeminiAPIKey), story.NewCache(s.Redis))

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	route.RegisterRoutes(s.App.Group("/routes"), route.NewClient(s.Cfg.OSRMBaseURL))
	geocode.RegisterRoutes(s.App.Group("/geocode"), geocode.NewClient(s.Cfg.NominatimBaseURL))
	story.RegisterRoutes(s.App.Group("/stories"), storySvc, jwtMiddleware)
	tracking.RegisterRoutes(s.App.Group("/walks"), tracking.NewService(s.DB, s.Stream), jwtMiddleware)
	prefs.RegisterRoutes(s.App.Group("/prefs"), prefs.NewService(s.Redis), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
