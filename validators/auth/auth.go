package authValidator

import (
	"strings"

	"edudash/middleware"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the validated body for dashboard logins
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates a login request
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !strings.Contains(reqData.Email, "@") {
			errors["email"] = "A valid email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
