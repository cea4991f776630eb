package instructorController

import (
	"edudash/middleware"
	"edudash/services"
	instructorValidator "edudash/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

var svc *services.InstructorService

// Init wires the controller's service. Called once from main.
func Init(s *services.InstructorService) {
	svc = s
}

// List serves one page of instructors, optionally filtered by approval status
func List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 20)
	status := c.Query("status")

	result, err := svc.ListInstructors(c.Context(), page, limit, status)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors may be stale!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched!", result)
}

// Get serves the merged instructor detail view
func Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid instructor id!", nil)
	}

	detail, err := svc.GetInstructorDetail(c.Context(), uint(id))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor fetched!", detail)
}

// Approve approves a pending instructor
func Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid instructor id!", nil)
	}

	if err := svc.ApproveInstructor(c.Context(), uint(id)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve instructor!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor approved!", nil)
}

// Reject rejects a pending instructor with a reason
func Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid instructor id!", nil)
	}

	reqData, ok := c.Locals("validatedReject").(*instructorValidator.RejectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := svc.RejectInstructor(c.Context(), uint(id), reqData.Reason); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject instructor!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor rejected!", nil)
}
