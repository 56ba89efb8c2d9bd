package serverutils

import (
	"errors"

	"chatshot-be/internal/pkg/logger"
	"chatshot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses:
// InvalidInput 400, AuthenticationFailed / missing session 401,
// DuplicateAccount 409, IndexOutOfRange 422, anything else 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrInvalidInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrSessionNotFound):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, err.Error()))
		case errors.Is(err, service.ErrDuplicateAccount):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.Is(err, service.ErrIndexOutOfRange):
			// Indices come from the same render pass, so this is a client
			// contract violation. Reject without mutating, but log loudly.
			log.Error("http", "stale index rejected", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(422, err.Error()))
		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "internal server error"))
		}
	}
}
