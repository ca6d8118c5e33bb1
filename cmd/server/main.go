// Package main is the entry point for the card management API server.
package main

import (
	"context"
	"time"

	"cardbank/internal/config"
	"cardbank/internal/repositories"
	"cardbank/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := repositories.InitDB(); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get database instance")
	}
	if err := sqlDB.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping database")
	}

	// Stale cache entries from a previous run would shadow migrations.
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			logrus.WithError(err).Warn("failed to flush cache on startup")
		}
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close database connection")
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close cache connection")
			}
		}
	}()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/auth/register", "/auth/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "too many requests, please try again later",
				})
			},
		}))
	}

	routes.SetupRoutes(app, repositories.DB)

	addr := ":" + config.GetEnv("PORT", "8080")
	logrus.WithField("addr", addr).Info("starting server")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
