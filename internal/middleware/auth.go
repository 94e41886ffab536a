package middleware

import (
	"slices"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected validates the bearer session token and stores it under
// authctx.TokenKey. Issuer and audience are checked after the signature.
func JWTProtected(cfg *config.Config) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: invalid or expired token",
		})
	}

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ContextKey: authctx.TokenKey,
		Claims:     &security.SessionClaims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, err := authctx.Claims(c)
			if err != nil || !trustedClaims(claims, cfg.JWTIssuer, cfg.JWTAudience) {
				return unauthorized(c)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func trustedClaims(claims *security.SessionClaims, issuer, audience string) bool {
	if issuer != "" && claims.Issuer != issuer {
		return false
	}
	if audience != "" && !slices.Contains([]string(claims.Audience), audience) {
		return false
	}
	return true
}

var _ jwt.Claims = (*security.SessionClaims)(nil)
