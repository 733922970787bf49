package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with optional category/search filters
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		if categoryID, err := strconv.Atoi(categoryStr); err == nil && categoryID > 0 {
			db = db.Where("category_id = ?", categoryID)
		}
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCategories lists the categories the catalog can be filtered by
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetCourseDetails returns a published course with its published chapters
// and lessons. Works for anonymous callers; enrollment state is included
// when a valid identity is present.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Order("position asc").Find(&chapters)

	// Anonymous callers get a zero userId
	userID, _ := c.Locals("userId").(uint)

	enrollmentSvc := services.NewEnrollmentService(database.Database.Db)
	isEnrolled := false
	if userID != 0 {
		isEnrolled, _ = enrollmentSvc.CheckEnrollment(userID, uint(courseID))
	}

	type ChapterWithLessons struct {
		courseModels.Chapter
		Lessons []courseModels.Lesson `json:"lessons"`
	}

	result := make([]ChapterWithLessons, len(chapters))
	for i, chapter := range chapters {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("chapter_id = ? AND is_published = ? AND is_deleted = ?", chapter.ID, true, false).
			Order("position asc").Find(&lessons)
		result[i] = ChapterWithLessons{Chapter: chapter, Lessons: lessons}
	}

	var rating float64
	database.Database.Db.Model(&courseModels.Course{}).
		Raw("SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE course_id = ? AND is_deleted = ?", courseID, false).
		Scan(&rating)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"chapters":    result,
		"is_enrolled": isEnrolled,
		"rating":      rating,
	})
}

// GetLessonDetail returns one lesson gated by enrollment or the lesson's
// free flag. Anonymous callers can only view free lessons.
func GetLessonDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	err := database.Database.Db.
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("lessons.id = ? AND lessons.is_published = ? AND lessons.is_deleted = ?", lessonID, true, false).
		Where("chapters.course_id = ? AND chapters.is_published = ? AND chapters.is_deleted = ?", courseID, true, false).
		First(&lesson).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	userID, _ := c.Locals("userId").(uint)

	enrollmentSvc := services.NewEnrollmentService(database.Database.Db)
	enrolled := false
	if userID != 0 {
		enrolled, _ = enrollmentSvc.CheckEnrollment(userID, uint(courseID))
	}

	if !enrollmentSvc.IsLessonAccessible(userID, &lesson, enrolled) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course to view this lesson!", nil)
	}

	isCompleted := false
	if userID != 0 {
		var progress courseModels.LessonProgress
		if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_completed = ?", userID, lessonID, true).First(&progress).Error; err == nil {
			isCompleted = true
		}
	}

	var quiz courseModels.Quiz
	hasQuiz := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error == nil

	response := fiber.Map{
		"lesson":       lesson,
		"is_completed": isCompleted,
	}
	if hasQuiz {
		response["quiz_id"] = quiz.ID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", response)
}
