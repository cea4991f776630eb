package instructorRoutes

import (
	instructorController "edudash/controllers/instructor"
	"edudash/middleware"
	instructorValidator "edudash/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructors", middleware.AuthMiddleware, middleware.RequireRole("ADMIN"))

	instructorGroup.Get("/", instructorController.List)
	instructorGroup.Get("/:id", instructorController.Get)
	instructorGroup.Put("/:id/approve", instructorController.Approve)
	instructorGroup.Put("/:id/reject", instructorValidator.Reject(), instructorController.Reject)
}
