package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
)

// ErrorHandler returns the app-level fiber error handler. Service-layer
// errors are translated by the handlers; this catches fiber's own errors
// and anything that escaped.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ERROR",
				Message: message,
				Path:    c.Path(),
			},
		})
	}
}
