package accountRoutes

import (
	accountController "edudash/controllers/account"
	"edudash/middleware"
	accountValidator "edudash/validators/account"

	"github.com/gofiber/fiber/v2"
)

func SetupAccountRoutes(app *fiber.App) {
	accountGroup := app.Group("/accounts", middleware.AuthMiddleware, middleware.RequireRole("ADMIN"))

	accountGroup.Get("/", accountController.List)
	accountGroup.Get("/search", accountController.Search)
	accountGroup.Get("/:id", accountController.Get)
	accountGroup.Put("/:id/status", accountValidator.UpdateStatus(), accountController.UpdateStatus)
}
