package paymentController

import (
	"edudash/middleware"
	"edudash/services"
	paymentValidator "edudash/validators/payment"

	"github.com/gofiber/fiber/v2"
)

var svc *services.PaymentService

// Init wires the controller's service. Called once from main.
func Init(s *services.PaymentService) {
	svc = s
}

// ListTransactions serves one page of payment transactions
func ListTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")
	method := c.Query("method")

	result, err := svc.ListTransactions(c.Context(), page, limit, status, method)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions may be stale!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched!", result)
}

// GetTransaction serves one transaction
func GetTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid transaction id!", nil)
	}

	txn, err := svc.GetTransaction(c.Context(), uint(id))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched!", txn)
}

// ApproveWithdrawal approves a pending withdrawal
func ApproveWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid withdrawal id!", nil)
	}

	if err := svc.ApproveWithdrawal(c.Context(), uint(id)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve withdrawal!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal approved!", nil)
}

// RejectWithdrawal rejects a pending withdrawal with a reason
func RejectWithdrawal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid withdrawal id!", nil)
	}

	reqData, ok := c.Locals("validatedReject").(*paymentValidator.RejectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := svc.RejectWithdrawal(c.Context(), uint(id), reqData.Reason); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject withdrawal!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawal rejected!", nil)
}
