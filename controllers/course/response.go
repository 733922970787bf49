package controllers

import (
	"errors"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps service failures onto the HTTP envelope. Unknown
// errors become a generic 500 so store details never leak to callers.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	case errors.Is(err, models.ErrUnavailable):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Resource is not available!", nil)
	case errors.Is(err, models.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Resource already exists!", nil)
	case errors.Is(err, models.ErrForbidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this resource!", nil)
	case errors.Is(err, models.ErrInvalidInput):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Invalid request data!", nil)
	case errors.Is(err, models.ErrUnauthorized):
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}
