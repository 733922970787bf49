package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
		}
	}
	return errors
}

// paramID validates a positive integer route parameter and stores it in
// Locals under the given key
func paramID(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}

		c.Locals(localKey, id)
		return c.Next()
	}
}

func GetCourseDetail() fiber.Handler {
	return paramID("id", "courseID", "Course ID")
}

func CourseParam() fiber.Handler {
	return paramID("course_id", "courseID", "Course ID")
}

func LessonParam() fiber.Handler {
	return paramID("lesson_id", "lessonID", "Lesson ID")
}

func ChapterParam() fiber.Handler {
	return paramID("chapter_id", "chapterID", "Chapter ID")
}

func QuizParam() fiber.Handler {
	return paramID("id", "quizID", "Quiz ID")
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page != nil && *reqData.Page < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Page must be greater than 0!", nil)
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Limit must be between 1 and 100!", nil)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}
