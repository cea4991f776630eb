package instructorValidator

import (
	"edudash/middleware"

	"github.com/gofiber/fiber/v2"
)

// RejectRequest is the validated body for instructor rejections
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject validates an instructor rejection request
func Reject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RejectRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Reason is required!"})
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}
