package walletController

import (
	"edudash/middleware"
	"edudash/services"
	walletValidator "edudash/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

var svc *services.WalletService

// Init wires the controller's service. Called once from main.
func Init(s *services.WalletService) {
	svc = s
}

// List serves one page of wallets
func List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	result, err := svc.ListWallets(c.Context(), page, limit, status)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallets may be stale!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallets fetched!", result)
}

// GetByUser serves the wallet of one user
func GetByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	wallet, err := svc.GetWalletByUser(c.Context(), uint(userID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Wallet not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet fetched!", wallet)
}

// SetStatus changes a wallet's status
func SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid wallet id!", nil)
	}

	reqData, ok := c.Locals("validatedSetStatus").(*walletValidator.SetStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := svc.SetWalletStatus(c.Context(), uint(id), reqData.Status); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update wallet status!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet status updated!", nil)
}

// SetLimit sets or clears a wallet's max balance limit
func SetLimit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid wallet id!", nil)
	}

	reqData, ok := c.Locals("validatedSetLimit").(*walletValidator.SetLimitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := svc.SetWalletMaxLimit(c.Context(), uint(id), reqData.MaxLimit); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update wallet limit!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet limit updated!", nil)
}
