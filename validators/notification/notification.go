package notificationValidator

import (
	"edudash/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendRequest is the validated body for single-recipient sends
type SendRequest struct {
	UserID  uint   `json:"userId"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// SendMultiRequest is the validated body for multi-recipient sends
type SendMultiRequest struct {
	UserIDs []uint `json:"userIds"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// UpdateContentRequest is the validated body for content updates
type UpdateContentRequest struct {
	Content string `json:"content"`
}

// Send validates a single-recipient send request
func Send() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SendRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSend", reqData)
		return c.Next()
	}
}

// SendMulti validates a multi-recipient send request
func SendMulti() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SendMultiRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.UserIDs) == 0 {
			errors["userIds"] = "At least one user ID is required!"
		}
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSendMulti", reqData)
		return c.Next()
	}
}

// UpdateContent validates a content update request
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Content == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "Content is required!"})
		}

		c.Locals("validatedUpdateContent", reqData)
		return c.Next()
	}
}
