package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	autherror "github.com/chirag640/national-health-record-system-backend-sub001/internal/errors"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/domain"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/handler"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/mocks"
	"github.com/chirag640/national-health-record-system-backend-sub001/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() *service.TokenService {
	return service.NewTokenService("access-secret", "refresh-secret", 15, 10080)
}

// mintAccessToken signs a real access token for the given account so the
// middleware exercises actual verification, not a stub.
func mintAccessToken(t *testing.T, tokens *service.TokenService, account *domain.Account) string {
	t.Helper()

	access, _, err := tokens.Generate(account, service.PermissionsFor(account.Role), "sess-1")
	require.NoError(t, err)

	return access
}

func decodeError(t *testing.T, resp *http.Response) *autherror.AppError {
	t.Helper()

	var appErr autherror.AppError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&appErr))

	return &appErr
}

func TestRequireAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := newTokenService()
	m := handler.NewMiddleware(tokens, mocks.NewMockConsentRepository(ctrl))

	app := fiber.New()
	app.Get("/me", m.RequireAuth(), func(c *fiber.Ctx) error {
		claims := handler.ClaimsFromCtx(c)
		return c.JSON(fiber.Map{"account_id": claims.AccountID})
	})

	account := &domain.Account{ID: "acc-1", Email: "a@x.com", Role: constant.RolePatient}

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, account))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "acc-1", body["account_id"])
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, autherror.CodeUnauthorized, decodeError(t, resp).Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token abc")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token rejected on access endpoints", func(t *testing.T) {
		_, refresh, err := tokens.Generate(account, nil, "sess-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+refresh)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := newTokenService()
	m := handler.NewMiddleware(tokens, mocks.NewMockConsentRepository(ctrl))

	app := fiber.New()
	app.Get("/admin", m.RequireAuth(),
		m.RequireRole(constant.RoleSystemAdmin, constant.RoleFacilityAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("listed role passes", func(t *testing.T) {
		admin := &domain.Account{ID: "adm-1", Role: constant.RoleSystemAdmin}
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, admin))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other role forbidden", func(t *testing.T) {
		patient := &domain.Account{ID: "acc-1", Role: constant.RolePatient}
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, patient))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, autherror.CodeForbidden, decodeError(t, resp).Code)
	})
}

func TestRequireConsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := newTokenService()
	consents := mocks.NewMockConsentRepository(ctrl)
	m := handler.NewMiddleware(tokens, consents)

	app := fiber.New()
	app.Get("/patients/:id/records", m.RequireAuth(),
		m.RequireConsent("read:patient_record", "id"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/encounters", m.RequireAuth(),
		m.RequireConsent("read:patient_record", "id"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	clinician := &domain.Account{
		ID:          "acc-c1",
		Role:        constant.RoleClinician,
		ClinicianID: "clin-1",
		FacilityID:  "fac-1",
	}

	t.Run("clinician with grant passes", func(t *testing.T) {
		consents.EXPECT().HasActiveGrant(gomock.Any(), "pat-1", "clin-1", "fac-1").Return(true, nil)

		req := httptest.NewRequest(http.MethodGet, "/patients/pat-1/records", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, clinician))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("clinician without grant gets consent error", func(t *testing.T) {
		consents.EXPECT().HasActiveGrant(gomock.Any(), "pat-2", "clin-1", "fac-1").Return(false, nil)

		req := httptest.NewRequest(http.MethodGet, "/patients/pat-2/records", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, clinician))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		appErr := decodeError(t, resp)
		assert.Equal(t, autherror.CodeConsentRequired, appErr.Code)
		assert.Equal(t, "pat-2", appErr.Details["subject_id"])
		assert.Equal(t, "clin-1", appErr.Details["clinician_id"])
		assert.Equal(t, "read:patient_record", appErr.Details["action"])
	})

	t.Run("non clinician is never gated", func(t *testing.T) {
		patient := &domain.Account{ID: "acc-p1", Role: constant.RolePatient}

		req := httptest.NewRequest(http.MethodGet, "/patients/pat-1/records", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, patient))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("route without subject value passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/encounters", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+mintAccessToken(t, tokens, clinician))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
