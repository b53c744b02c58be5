// Package errors defines the typed error surface of the identity core.
// Every failure a caller can act on carries a stable machine-readable code.
package errors

import "fmt"

// Stable error codes returned to API clients.
const (
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeAccountLocked          = "ACCOUNT_LOCKED"
	CodeEmailNotVerified       = "EMAIL_NOT_VERIFIED"
	CodeAccountInactive        = "ACCOUNT_INACTIVE"
	CodeEmailAlreadyInUse      = "EMAIL_ALREADY_IN_USE"
	CodeTokenReuseDetected     = "TOKEN_REUSE_DETECTED"
	CodeOTPInvalidOrExpired    = "OTP_INVALID_OR_EXPIRED"
	CodeOTPMaxAttemptsExceeded = "OTP_MAX_ATTEMPTS_EXCEEDED"
	CodeOTPIncorrect           = "OTP_INCORRECT"
	CodeConsentRequired        = "CONSENT_REQUIRED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeInternal               = "INTERNAL"
)

// AppError is a coded error with optional structured detail. Details must
// never contain secret material; they are surfaced to clients verbatim.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two AppErrors by code, so errors.Is works against the
// sentinels below even for instances carrying per-call details.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an AppError with the given code and message.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WithDetails returns a copy of e carrying the given detail map.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Details: details}
}

var (
	ErrInvalidCredentials     = New(CodeInvalidCredentials, "invalid credentials")
	ErrAccountLocked          = New(CodeAccountLocked, "account temporarily locked")
	ErrEmailNotVerified       = New(CodeEmailNotVerified, "email address not verified")
	ErrAccountInactive        = New(CodeAccountInactive, "account is deactivated")
	ErrEmailAlreadyInUse      = New(CodeEmailAlreadyInUse, "email already in use")
	ErrTokenReuseDetected     = New(CodeTokenReuseDetected, "refresh token reuse detected")
	ErrInvalidSession         = New(CodeInvalidCredentials, "invalid or expired session")
	ErrOTPInvalidOrExpired    = New(CodeOTPInvalidOrExpired, "code is invalid or has expired")
	ErrOTPMaxAttemptsExceeded = New(CodeOTPMaxAttemptsExceeded, "too many incorrect attempts")
	ErrOTPIncorrect           = New(CodeOTPIncorrect, "incorrect code")
	ErrConsentRequired        = New(CodeConsentRequired, "no active consent grant for this patient")
	ErrUnauthorized           = New(CodeUnauthorized, "missing or invalid access token")
	ErrForbidden              = New(CodeForbidden, "insufficient role")
)
