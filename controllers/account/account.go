package accountController

import (
	"edudash/middleware"
	"edudash/services"
	accountValidator "edudash/validators/account"

	"github.com/gofiber/fiber/v2"
)

var svc *services.AccountService

// Init wires the controller's service. Called once from main.
func Init(s *services.AccountService) {
	svc = s
}

// List serves one page of accounts
func List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	result, err := svc.ListAccounts(c.Context(), page, limit, status)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts may be stale!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts fetched!", result)
}

// Search serves accounts matching a username or email term
func Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search term is required!", nil)
	}

	accounts, err := svc.SearchAccounts(c.Context(), term)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts may be stale!", accounts)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Accounts fetched!", accounts)
}

// Get serves one account
func Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid account id!", nil)
	}

	account, err := svc.GetAccount(c.Context(), uint(id))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account fetched!", account)
}

// UpdateStatus changes an account's status
func UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid account id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateStatus").(*accountValidator.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := svc.UpdateAccountStatus(c.Context(), uint(id), reqData.Status); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update account status!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account status updated!", fiber.Map{
		"accountId": id,
		"status":    reqData.Status,
	})
}
