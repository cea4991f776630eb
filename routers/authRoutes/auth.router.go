package authRoutes

import (
	authController "edudash/controllers/auth"
	"edudash/middleware"
	authValidator "edudash/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/logout", middleware.AuthMiddleware, authController.Logout)
	authGroup.Get("/me", middleware.AuthMiddleware, authController.Me)
}
