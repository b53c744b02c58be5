package handler

import (
	"strings"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/observability"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// Middleware bundles the request-time auth checks: token verification,
// role gating and the consent gate.
type Middleware struct {
	tokens   service.TokenGenerator
	consents domain.ConsentRepository
}

func NewMiddleware(tokens service.TokenGenerator, consents domain.ConsentRepository) *Middleware {
	return &Middleware{tokens: tokens, consents: consents}
}

// RequireAuth verifies the Bearer access token and stashes its claims.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return writeError(c, autherror.ErrUnauthorized)
		}

		claims, err := m.tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return writeError(c, autherror.ErrUnauthorized)
		}

		c.Locals(claimsKey, claims)

		return c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after RequireAuth.
func (m *Middleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return writeError(c, autherror.ErrUnauthorized)
		}

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return writeError(c, autherror.ErrForbidden)
	}
}

// RequireConsent gates clinician access to a patient's data on an active
// consent grant. The route must name the path parameter carrying the
// subject id; a route without a subject value is not subject-scoped and
// passes through. Non-clinician roles are never gated.
func (m *Middleware) RequireConsent(action, subjectParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return writeError(c, autherror.ErrUnauthorized)
		}

		if claims.Role != constant.RoleClinician {
			return c.Next()
		}

		subjectID := c.Params(subjectParam)
		if subjectID == "" {
			return c.Next()
		}

		granted, err := m.consents.HasActiveGrant(c.UserContext(), subjectID, claims.ClinicianID, claims.FacilityID)
		if err != nil {
			return writeError(c, err)
		}
		if !granted {
			observability.ConsentDenials.Inc()

			return writeError(c, autherror.ErrConsentRequired.WithDetails(map[string]any{
				"subject_id":   subjectID,
				"clinician_id": claims.ClinicianID,
				"action":       action,
			}))
		}

		return c.Next()
	}
}

// ClaimsFromCtx returns the verified access-token claims, or nil when the
// request did not pass RequireAuth.
func ClaimsFromCtx(c *fiber.Ctx) *service.JWTCustomClaims {
	claims, _ := c.Locals(claimsKey).(*service.JWTCustomClaims)

	return claims
}
