package serverutils

import (
	"hotel-rooms-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id (kept from the client when
// present) and writes one access line per request.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestId := ctx.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestId); err != nil {
			requestId = uuid.NewString()
		}
		ctx.Set(HeaderRequestID, requestId)
		ctx.Locals("request_id", requestId)

		err := ctx.Next()
		if err != nil {
			// Let the error handler pick the status before we log it
			if handlerErr := ctx.App().Config().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("HTTP", "request", map[string]interface{}{
			"request_id": requestId,
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
		})
		return nil
	}
}
