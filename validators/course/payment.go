package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reference string `json:"reference" validate:"required,uuid4"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedPaymentConfirm", reqData)
		return c.Next()
	}
}
