package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/aicuts/faceshape-api/internal/domain"
)

// Recover converts handler panics into the generic failure response instead of
// dropping the connection. The panic value stays in server-side logs only.
func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Path()),
					slog.String("method", c.Method()),
				)

				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": domain.ErrInternal.Message,
				})
			}
		}()
		return c.Next()
	}
}
