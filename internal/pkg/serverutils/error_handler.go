package serverutils

import (
	"gradaid-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps business error kinds to HTTP status codes. InsufficientCredits
// gets 402 so the client can show the top-up affordance.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindAccountNotFound, apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInsufficientCredits:
		return fiber.StatusPaymentRequired
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError converts a service error into the JSON error envelope.
func HandleError(ctx *fiber.Ctx, err error) error {
	status := statusFor(apperror.KindOf(err))
	return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
}

// ErrorHandlerMiddleware catches errors returned by downstream handlers that
// were not already converted into a JSON response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}
		return HandleError(ctx, err)
	}
}
