package handler

import (
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/dto"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{authService: authService, accountService: accountService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	account, err := h.accountService.Register(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    account.ID,
		"email": account.Email,
		"role":  account.Role,
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accountService.VerifyEmail(c.UserContext(), input); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.Message{Message: "email verified"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	resp, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) RequestLoginOTP(c *fiber.Ctx) error {
	var input dto.RequestOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	if err := h.authService.RequestLoginOTP(c.UserContext(), input); err != nil {
		return writeError(c, err)
	}

	// Always generic: the response must not reveal whether the email exists.
	return c.JSON(dto.Message{Message: "if the account exists, a code has been sent"})
}

func (h *AuthHandler) LoginWithOTP(c *fiber.Ctx) error {
	var input dto.OTPLoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	resp, err := h.authService.LoginWithOTP(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	resp, err := h.authService.Refresh(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	// Missing or garbled input is not an error; logout is best-effort.
	_ = c.BodyParser(&input)

	h.authService.Logout(c.UserContext(), input)

	return c.JSON(dto.Message{Message: "logged out"})
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var input dto.RequestPasswordResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	if err := h.accountService.RequestPasswordReset(c.UserContext(), input); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.Message{Message: "if the account exists, a reset code has been sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accountService.ResetPassword(c.UserContext(), input); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.Message{Message: "password updated"})
}

// Me returns the verified claims of the caller.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := ClaimsFromCtx(c)
	if claims == nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	return c.JSON(fiber.Map{
		"account_id":  claims.AccountID,
		"email":       claims.Email,
		"role":        claims.Role,
		"permissions": claims.Permissions,
		"session_id":  claims.SessionID,
	})
}

// CheckPatientAccess is the probe behind the consent gate: reaching it at
// all means the caller may act on the subject's data.
func (h *AuthHandler) CheckPatientAccess(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"patient_id": c.Params("id"), "access": "granted"})
}

// ForceLogout revokes every session of the target account.
func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	if err := h.authService.ForceLogout(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.Message{Message: "all sessions revoked"})
}
