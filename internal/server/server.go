package server

import (
	"backend-chirp/internal/auth"
	"backend-chirp/internal/config"
	"backend-chirp/internal/social"
	"backend-chirp/internal/tweet"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(requestID())
	app.Use(logger.New())
	app.Use(countRequests())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App, auth.NewService(s.Cfg.JWTSecret, s.DB))
	social.RegisterRoutes(s.App, social.NewService(s.DB), jwtMiddleware)
	tweet.RegisterRoutes(s.App, tweet.NewService(s.DB, s.Redis), jwtMiddleware)
}

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Request-Id", uuid.NewString())
		return c.Next()
	}
}
