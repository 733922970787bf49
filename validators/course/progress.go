package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete validates the completion toggle body. The flag is a
// pointer so that an absent field is rejected rather than read as false.
func MarkLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsCompleted *bool `json:"is_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsCompleted == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"is_completed": "is_completed is required!",
			})
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
