package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentSession opens a gateway checkout for a priced course
func CreatePaymentSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	svc := services.NewPaymentService(database.Database.Db, utils.NewGatewayClient())
	session, err := svc.CreateSession(userID, uint(courseID))
	if err != nil {
		return serviceError(c, err, "Failed to create payment session!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment session created successfully!", session)
}

// ConfirmPayment captures a pending session, producing the proof of
// payment the enroll endpoint consumes
func ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentConfirm").(*struct {
		Reference string `json:"reference" validate:"required,uuid4"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewPaymentService(database.Database.Db, utils.NewGatewayClient())
	session, err := svc.ConfirmSession(userID, reqData.Reference)
	if err != nil {
		return serviceError(c, err, "Failed to confirm payment!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed successfully!", session)
}
