package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{
	JWTSecret:   "middleware-secret",
	JWTIssuer:   "vardforalla",
	JWTAudience: "vardforalla-web",
}

type staticRoles map[uuid.UUID][]string

func (s staticRoles) GetUserRoles(_ context.Context, id uuid.UUID) ([]string, error) {
	if id == uuid.Nil {
		return nil, errors.New("lookup failed")
	}
	return s[id], nil
}

func issue(t *testing.T, secret, issuer, audience string, user *models.User, roles ...string) string {
	t.Helper()
	signer, err := security.NewTokenIssuer(secret, issuer, audience, time.Hour)
	require.NoError(t, err)
	token, err := signer.IssueSessionToken(user, roles)
	require.NoError(t, err)
	return token
}

func newApp(roles RoleLookup) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTProtected(testCfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", JWTProtected(testCfg), AdminRequired(roles), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJWTProtected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "anna@example.se"}
	app := newApp(staticRoles{})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", issue(t, testCfg.JWTSecret, testCfg.JWTIssuer, testCfg.JWTAudience, user), fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "not.a.token", fiber.StatusUnauthorized},
		{"wrong secret", issue(t, "other-secret", testCfg.JWTIssuer, testCfg.JWTAudience, user), fiber.StatusUnauthorized},
		{"wrong issuer", issue(t, testCfg.JWTSecret, "someone-else", testCfg.JWTAudience, user), fiber.StatusUnauthorized},
		{"wrong audience", issue(t, testCfg.JWTSecret, testCfg.JWTIssuer, "mobile", user), fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(t, app, "/me", tt.token))
		})
	}
}

func TestAdminRequired(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Email: "admin@example.se"}
	member := &models.User{ID: uuid.New(), Email: "member@example.se"}
	demoted := &models.User{ID: uuid.New(), Email: "demoted@example.se"}

	app := newApp(staticRoles{
		admin.ID:   {models.RoleAdmin, models.RoleUser},
		member.ID:  {models.RoleUser},
		demoted.ID: {models.RoleUser},
	})
	sign := func(u *models.User, roles ...string) string {
		return issue(t, testCfg.JWTSecret, testCfg.JWTIssuer, testCfg.JWTAudience, u, roles...)
	}

	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", sign(admin, models.RoleAdmin)))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", sign(member, models.RoleUser)))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", sign(demoted, models.RoleAdmin)),
		"stored roles win over the token")
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", ""))
}

func TestResolveCaller(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Email: "admin@example.se"}
	demoted := &models.User{ID: uuid.New(), Email: "demoted@example.se"}
	roles := staticRoles{
		admin.ID:   {models.RoleAdmin},
		demoted.ID: {models.RoleUser},
	}

	app := fiber.New()
	app.Get("/caller", JWTProtected(testCfg), ResolveCaller(roles), func(c *fiber.Ctx) error {
		caller, err := authctx.Caller(c)
		if err != nil {
			return err
		}
		if caller.IsAdmin {
			return c.SendStatus(fiber.StatusAccepted)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	sign := func(u *models.User, roles ...string) string {
		return issue(t, testCfg.JWTSecret, testCfg.JWTIssuer, testCfg.JWTAudience, u, roles...)
	}

	assert.Equal(t, fiber.StatusAccepted, get(t, app, "/caller", sign(admin)), "promotion applies to old tokens")
	assert.Equal(t, fiber.StatusOK, get(t, app, "/caller", sign(demoted, models.RoleAdmin)), "demotion applies to old tokens")
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/caller", ""))
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{CORSOrigins: " https://app.vardforalla.se/ , ,https://admin.vardforalla.se,https://app.vardforalla.se"}
	app := fiber.New()
	app.Use(CORS(cfg))
	app.Get("/routines", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXRequestID, "r-1")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodOptions, "/routines", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://admin.vardforalla.se")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPut)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://admin.vardforalla.se", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "600", resp.Header.Get(fiber.HeaderAccessControlMaxAge))
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest(fiber.MethodGet, "/routines", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.vardforalla.se")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://app.vardforalla.se", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, fiber.HeaderXRequestID, resp.Header.Get(fiber.HeaderAccessControlExposeHeaders))

	req = httptest.NewRequest(fiber.MethodGet, "/routines", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://evil.example")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, "*", allowedOrigins(""))
	assert.Equal(t, "*", allowedOrigins(" , "))
	assert.Equal(t, "*", allowedOrigins("https://a.se,*"))
	assert.Equal(t, "https://a.se,https://b.se", allowedOrigins("https://a.se/, https://b.se ,https://a.se"))
}
