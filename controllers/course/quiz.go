package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// GetQuiz returns a quiz for taking, with correct answers stripped
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	svc := services.NewQuizService(database.Database.Db)
	view, err := svc.GetQuizForTaking(uint(quizID), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", view)
}

// SubmitQuiz grades a submission and persists a new attempt
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedQuizSubmit").(*struct {
		Answers map[uint]string `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewQuizService(database.Database.Db)
	result, err := svc.SubmitAttempt(uint(quizID), userID, reqData.Answers)
	if err != nil {
		return serviceError(c, err, "Failed to submit quiz!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", result)
}

// GetQuizAttempts returns the caller's attempt history for a quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	svc := services.NewQuizService(database.Database.Db)
	attempts, err := svc.ListAttempts(uint(quizID), userID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch attempts!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}
