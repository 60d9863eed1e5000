package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	admin := app.Group("/api/admin", handler.AdminRequired)
	admin.Get("/overview", handler.AdminOverview)
}
