// handlers/app.go
package handlers

import (
	"strings"

	"pokedex-catalog/logging"
	"pokedex-catalog/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type AppConfig struct {
	AllowedOrigins string
	StaticDir      string
	BodyLimit      int
}

// NewApp assembles the fiber application with every catalog route.
func NewApp(cfg AppConfig, gate *middleware.Gate, svc Services, logger *zap.Logger) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit == 0 {
		bodyLimit = 16 * 1024 * 1024 // 16MB, enough for a picture upload
	}
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logging.RequestLogger(logger))

	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	SetupCatalogRoutes(app, svc)
	SetupInputRoutes(app, gate, svc)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
	return app
}
