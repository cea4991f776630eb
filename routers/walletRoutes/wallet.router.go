package walletRoutes

import (
	walletController "edudash/controllers/wallet"
	"edudash/middleware"
	walletValidator "edudash/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallets", middleware.AuthMiddleware, middleware.RequireRole("ADMIN"))

	walletGroup.Get("/", walletController.List)
	walletGroup.Get("/user/:userId", walletController.GetByUser)
	walletGroup.Put("/:id/status", walletValidator.SetStatus(), walletController.SetStatus)
	walletGroup.Put("/:id/limit", walletValidator.SetLimit(), walletController.SetLimit)
}
