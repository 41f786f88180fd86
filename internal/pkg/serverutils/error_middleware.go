package serverutils

import (
	"errors"

	"ai-chat-history-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// JSON envelopes. Validation problems surface as 400s; everything else is a
// generic 500 so internals never leak to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(FailResponse(fiberErr.Message))
		}

		var validationErr *apperror.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(FailResponse(validationErr.Error()))
		}
		if errors.Is(err, apperror.ErrInvalidUserID) {
			return ctx.Status(fiber.StatusBadRequest).JSON(FailResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse("Internal server error"))
	}
}
