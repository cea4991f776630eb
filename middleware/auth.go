package middleware

import (
	"strings"

	"edudash/session"

	"github.com/gofiber/fiber/v2"
)

// Sessions is the injected session manager used by AuthMiddleware. Set once
// from main before routes are registered.
var Sessions *session.Manager

// AuthMiddleware checks for a live dashboard session behind the bearer token
func AuthMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Missing or invalid Authorization header",
		})
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid Authorization header format",
		})
	}

	tokenString := authHeader[len("Bearer "):]

	record, err := Sessions.Rehydrate(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired session",
		})
	}

	c.Locals("userId", record.UserID)
	c.Locals("roles", Sessions.Roles(record))
	c.Locals("token", tokenString)

	return c.Next()
}

// RequireRole guards a route group to sessions carrying the given role
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").([]string)
		if !ok {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
