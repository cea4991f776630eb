package notificationRoutes

import (
	notificationController "edudash/controllers/notification"
	"edudash/middleware"
	notificationValidator "edudash/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notifGroup := app.Group("/notifications", middleware.AuthMiddleware)

	notifGroup.Get("/", notificationController.List)
	notifGroup.Get("/unread-count", notificationController.UnreadCount)
	notifGroup.Get("/stats", notificationController.Stats)

	notifGroup.Put("/read-all", notificationController.MarkAllRead)
	notifGroup.Put("/:id/read", notificationController.MarkRead)
	notifGroup.Put("/:id/content", notificationValidator.UpdateContent(), notificationController.UpdateContent)
	notifGroup.Delete("/read", notificationController.DeleteAllRead)
	notifGroup.Delete("/:id", notificationController.Delete)

	notifGroup.Post("/send", notificationValidator.Send(), notificationController.Send)
	notifGroup.Post("/send-multiple", notificationValidator.SendMulti(), notificationController.SendMulti)

	notifGroup.Post("/refresh", notificationController.Refresh)
	notifGroup.Post("/force-refresh", notificationController.ForceRefresh)

	// Admin diagnostics
	adminGroup := notifGroup.Group("/admin", middleware.RequireRole("ADMIN"))
	adminGroup.Get("/debug", notificationController.Debug)
	adminGroup.Get("/health", notificationController.Health)
	adminGroup.Post("/sync", notificationController.Sync)
	adminGroup.Post("/flush-offline", notificationController.FlushOffline)
}
