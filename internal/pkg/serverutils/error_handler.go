package serverutils

import (
	"errors"

	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as an ErrorResponse.
// Internal details are logged, never sent to the client.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, message := classify(err)

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	if appErr, ok := apperror.As(err); ok {
		switch appErr.Kind {
		case apperror.KindNotFound:
			return fiber.StatusNotFound, appErr.Message
		case apperror.KindBadRequest:
			return fiber.StatusBadRequest, appErr.Message
		default:
			return fiber.StatusInternalServerError, appErr.Message
		}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, FormatValidationErrors(validationErrs)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
