package walletValidator

import (
	"edudash/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetStatusRequest is the validated body for wallet status changes
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetLimitRequest is the validated body for wallet max-limit changes. A nil
// limit clears the cap.
type SetLimitRequest struct {
	MaxLimit *float64 `json:"maxLimit"`
}

// SetStatus validates a wallet status change request
func SetStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SetStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Status {
		case "ACTIVE", "FROZEN", "CLOSED":
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{"status": "Unknown wallet status!"})
		}

		c.Locals("validatedSetStatus", reqData)
		return c.Next()
	}
}

// SetLimit validates a wallet max-limit change request
func SetLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SetLimitRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.MaxLimit != nil && *reqData.MaxLimit < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"maxLimit": "Max limit must not be negative!"})
		}

		c.Locals("validatedSetLimit", reqData)
		return c.Next()
	}
}
