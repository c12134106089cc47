package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/transport/httpserver/dto"
)

// Recover turns a handler panic into a 500 response. The panic is logged at
// ERROR with its stack, which also reaches Sentry when the logger tees to it.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			fields := []zap.Field{
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			}
			if id, ok := c.Locals("requestid").(string); ok {
				fields = append(fields, zap.String("request_id", id))
			}
			logger.Error("handler panicked", fields...)

			err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "internal server error",
				Code:  "INTERNAL_ERROR",
			})
		}()

		return c.Next()
	}
}
