package accountValidator

import (
	"edudash/middleware"
	"edudash/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateStatusRequest is the validated body for account status changes
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus validates an account status change request
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status == "" {
			errors["status"] = "Status is required!"
		} else if !models.ValidAccountStatus(reqData.Status) {
			errors["status"] = "Unknown account status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}
