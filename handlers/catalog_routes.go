// handlers/catalog_routes.go
package handlers

import (
	"pokedex-catalog/middleware"
	"pokedex-catalog/services"
	"pokedex-catalog/workers"

	"github.com/gofiber/fiber/v2"
)

type Services struct {
	Catalog     *services.CatalogService
	Submissions *services.SubmissionService
	Auth        *services.AuthService
	Pages       *services.PageService
	Health      *workers.StoreHealth
}

// SetupCatalogRoutes registers the JSON API. Fixed paths go before the
// parameterised ones they would otherwise collide with.
func SetupCatalogRoutes(app *fiber.App, svc Services) {
	// 🔓 Public read API
	app.Get("/pokemon/api", svc.Catalog.GetAllCreatures)
	app.Get("/moves/api", svc.Catalog.GetAllMoves)
	app.Get("/pokemon/:name", svc.Catalog.GetCreatureByName)
	app.Get("/poke/:id", svc.Catalog.GetCreatureByCatalogID)
	app.Get("/moves/:name", svc.Catalog.GetMoveByName)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		status := svc.Health.Status()
		if status.Status == workers.HealthDegraded {
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		return c.JSON(status)
	})
}

// SetupInputRoutes registers the pages, the login form and the gated input
// forms. Both showing and submitting an input form need an authenticated
// session.
func SetupInputRoutes(app *fiber.App, gate *middleware.Gate, svc Services) {
	app.Get("/", svc.Pages.Home)
	app.Get("/login", svc.Pages.LoginForm)
	app.Post("/login", gate.RequireSession(), svc.Auth.Login)

	// 🔐 Input forms, gated per route
	requireSession := gate.RequireSession()
	requireLogin := gate.RequireAuthenticated("/login")

	app.Get("/pokemon-input", requireSession, requireLogin, svc.Pages.CreatureForm)
	app.Post("/pokemon-input", requireSession, requireLogin, svc.Submissions.SubmitCreature)
	app.Get("/move-input", requireSession, requireLogin, svc.Pages.MoveForm)
	app.Post("/move-input", requireSession, requireLogin, svc.Submissions.SubmitMove)
}
