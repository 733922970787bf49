package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete toggles a lesson's completion flag for the caller
// and returns the recomputed course progress
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	// The lesson must belong to the course in the URL
	var course courseModels.Course
	err := database.Database.Db.
		Joins("JOIN chapters ON chapters.course_id = courses.id").
		Joins("JOIN lessons ON lessons.chapter_id = chapters.id").
		Where("courses.id = ? AND lessons.id = ? AND lessons.is_deleted = ?", courseID, lessonID, false).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		IsCompleted *bool `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewProgressService(database.Database.Db)
	progress, percentage, err := svc.SetLessonCompletion(userID, uint(lessonID), *reqData.IsCompleted)
	if err != nil {
		return serviceError(c, err, "Failed to update lesson progress!")
	}

	if percentage >= 100 {
		go utils.SendCourseCompletedEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress updated successfully!", fiber.Map{
		"progress":        progress,
		"course_progress": percentage,
	})
}

// GetCourseProgress returns the caller's live recomputed course percentage
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	svc := services.NewProgressService(database.Database.Db)
	percentage, err := svc.GetProgress(userID, uint(courseID))
	if err != nil {
		return serviceError(c, err, "Failed to fetch course progress!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id": courseID,
		"progress":  percentage,
	})
}
