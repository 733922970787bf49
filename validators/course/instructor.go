package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title" validate:"required,min=3"`
			Description  string  `json:"description"`
			Price        float64 `json:"price" validate:"gte=0"`
			CategoryID   uint    `json:"category_id"`
			ThumbnailURL string  `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func PublishBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsPublished *bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsPublished == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_published": "is_published is required!",
			})
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

func ChapterBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			Position    int    `json:"position" validate:"gte=0"`
			IsPublished bool   `json:"is_published"`
			IsFree      bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			Duration    int    `json:"duration" validate:"gte=0"`
			Position    int    `json:"position" validate:"gte=0"`
			IsPublished bool   `json:"is_published"`
			IsFree      bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func QuizBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
