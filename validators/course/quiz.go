package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuiz validates the answers map. Grading itself checks content;
// this only rejects a missing or malformed mapping.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[uint]string `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "answers must be a mapping of question id to answer!",
			})
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}
