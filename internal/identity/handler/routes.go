package handler

import (
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, m *Middleware) {
	api := app.Group("/api/v1")

	api.Post("/register", h.Register)
	api.Post("/verify-email", h.VerifyEmail)
	api.Post("/login", h.Login)
	api.Post("/login/otp/request", h.RequestLoginOTP)
	api.Post("/login/otp", h.LoginWithOTP)
	api.Post("/refresh", h.Refresh)
	api.Delete("/session", h.Logout)
	api.Post("/password-reset/request", h.RequestPasswordReset)
	api.Post("/password-reset", h.ResetPassword)

	authed := api.Group("", m.RequireAuth())
	authed.Get("/me", h.Me)

	// Subject-scoped routes run through the consent gate after identity is
	// established. Downstream record services mount the same middleware.
	patients := authed.Group("/patients/:id", m.RequireConsent("read:patient_record", "id"))
	patients.Get("/access", h.CheckPatientAccess)

	admin := api.Group("/admin", m.RequireAuth(),
		m.RequireRole(constant.RoleSystemAdmin, constant.RoleFacilityAdmin))
	admin.Delete("/accounts/:id/sessions", h.ForceLogout)
}
