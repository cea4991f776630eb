package paymentRoutes

import (
	paymentController "edudash/controllers/payment"
	"edudash/middleware"
	paymentValidator "edudash/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments", middleware.AuthMiddleware, middleware.RequireRole("ADMIN"))

	paymentGroup.Get("/transactions", paymentController.ListTransactions)
	paymentGroup.Get("/transactions/:id", paymentController.GetTransaction)
	paymentGroup.Put("/withdrawals/:id/approve", paymentController.ApproveWithdrawal)
	paymentGroup.Put("/withdrawals/:id/reject", paymentValidator.Reject(), paymentController.RejectWithdrawal)
}
