package handler

import (
	"errors"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps stable error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case autherror.CodeInvalidInput:
		return fiber.StatusBadRequest
	case autherror.CodeInvalidCredentials,
		autherror.CodeTokenReuseDetected,
		autherror.CodeOTPInvalidOrExpired,
		autherror.CodeOTPMaxAttemptsExceeded,
		autherror.CodeOTPIncorrect,
		autherror.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case autherror.CodeEmailNotVerified,
		autherror.CodeAccountInactive,
		autherror.CodeConsentRequired,
		autherror.CodeForbidden:
		return fiber.StatusForbidden
	case autherror.CodeAccountLocked:
		return fiber.StatusLocked
	case autherror.CodeEmailAlreadyInUse:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError serializes an error as {code, message, details?}. Unexpected
// errors collapse to a generic INTERNAL response so internals never leak.
func writeError(c *fiber.Ctx, err error) error {
	var appErr *autherror.AppError
	if !errors.As(err, &appErr) {
		appErr = autherror.New(autherror.CodeInternal, "internal error")
	}

	return c.Status(statusFor(appErr.Code)).JSON(appErr)
}
