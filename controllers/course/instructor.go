package controllers

import (
	"encoding/json"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// requireOwnedCourse loads a course and verifies the caller owns it.
// Admins may manage any course.
func requireOwnedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, error) {
	userID := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(models.Role)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && role != models.RoleAdmin {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, nil
}

// CreateCourse creates a new draft course owned by the caller
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string  `json:"title" validate:"required,min=3"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" validate:"gte=0"`
		CategoryID   uint    `json:"category_id"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		CategoryID:   reqData.CategoryID,
		ThumbnailURL: reqData.ThumbnailURL,
		InstructorID: userID,
		IsPublished:  false,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an owned course's catalog fields
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string  `json:"title" validate:"required,min=3"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" validate:"gte=0"`
		CategoryID   uint    `json:"category_id"`
		ThumbnailURL string  `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = reqData.Price
	course.CategoryID = reqData.CategoryID
	course.ThumbnailURL = reqData.ThumbnailURL

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse toggles the publish flag on an owned course
func PublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	reqData, ok := c.Locals("validatedPublish").(*struct {
		IsPublished *bool `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.IsPublished = *reqData.IsPublished
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course publish state updated!", course)
}

// CreateChapter adds a chapter to an owned course
func CreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		Position    int    `json:"position" validate:"gte=0"`
		IsPublished bool   `json:"is_published"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter := courseModels.Chapter{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    reqData.Position,
		IsPublished: reqData.IsPublished,
		IsFree:      reqData.IsFree,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// CreateLesson adds a lesson to a chapter of an owned course
func CreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		Duration    int    `json:"duration" validate:"gte=0"`
		Position    int    `json:"position" validate:"gte=0"`
		IsPublished bool   `json:"is_published"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		ChapterID:   chapter.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		Position:    reqData.Position,
		IsPublished: reqData.IsPublished,
		IsFree:      reqData.IsFree,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// CreateQuiz attaches a quiz with its questions to a lesson of an owned course
func CreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var lesson courseModels.Lesson
	errLesson := database.Database.Db.
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("lessons.id = ? AND lessons.is_deleted = ? AND chapters.course_id = ?", lessonID, false, course.ID).
		First(&lesson).Error
	if errLesson != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string  `json:"title" validate:"required,min=2"`
		Description  string  `json:"description"`
		PassingScore float64 `json:"passing_score" validate:"gte=0,lte=100"`
		Questions    []struct {
			Prompt        string   `json:"prompt" validate:"required"`
			Type          string   `json:"type"`
			Options       []string `json:"options" validate:"required,min=2"`
			CorrectAnswer string   `json:"correct_answer" validate:"required"`
			Points        int      `json:"points" validate:"gte=1"`
			Position      int      `json:"position" validate:"gte=0"`
			Explanation   string   `json:"explanation"`
		} `json:"questions" validate:"required,min=1,dive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz := courseModels.Quiz{
		LessonID:     lesson.ID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		PassingScore: reqData.PassingScore,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for _, q := range reqData.Questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question options!", nil)
		}

		qType := q.Type
		if qType == "" {
			qType = "MULTIPLE_CHOICE"
		}

		question := courseModels.Question{
			QuizID:        quiz.ID,
			Prompt:        q.Prompt,
			Type:          qType,
			Options:       datatypes.JSON(optionsJSON),
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Position:      q.Position,
			Explanation:   q.Explanation,
		}

		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// GetCourseEnrollments returns the enrollment roster for an owned course
func GetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := requireOwnedCourse(c, courseID)
	if course == nil {
		return err
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
	})
}
