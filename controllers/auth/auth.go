package authController

import (
	"edudash/endpoints"
	"edudash/middleware"
	"edudash/session"
	"edudash/upstream"
	authValidator "edudash/validators/auth"

	"github.com/gofiber/fiber/v2"
)

var (
	api      *upstream.Client
	sessions *session.Manager
)

// Init wires the controller's collaborators. Called once from main.
func Init(a *upstream.Client, s *session.Manager) {
	api = a
	sessions = s
}

// loginResult is the upstream auth payload
type loginResult struct {
	Token    string   `json:"token"`
	ID       uint     `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Login authenticates against the upstream and persists the session locally
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	path, err := endpoints.Build("auth.login", nil)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Login unavailable!", nil)
	}

	var result loginResult
	if err := api.Post(c.Context(), path, reqData, &result); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	record, err := sessions.Save(result.Token)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Received an invalid session token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token":    result.Token,
		"id":       record.UserID,
		"email":    record.Email,
		"username": record.Username,
		"roles":    sessions.Roles(record),
	})
}

// Logout tears down the session
func Logout(c *fiber.Ctx) error {
	token, ok := c.Locals("token").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No active session!", nil)
	}
	if err := sessions.Clear(token); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log out!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out!", nil)
}

// Me serves the rehydrated session of the caller
func Me(c *fiber.Ctx) error {
	token, ok := c.Locals("token").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No active session!", nil)
	}

	record, err := sessions.Rehydrate(token)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Session expired!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session fetched!", fiber.Map{
		"id":       record.UserID,
		"email":    record.Email,
		"username": record.Username,
		"roles":    sessions.Roles(record),
		"expires":  record.ExpiresAt,
	})
}
