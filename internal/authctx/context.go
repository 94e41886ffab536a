// Package authctx reads the authenticated caller from a fiber request.
package authctx

import (
	"errors"
	"slices"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenKey is the fiber local the JWT middleware stores the parsed token under.
	TokenKey = "user"
	// CallerKey holds the access.Caller resolved against the credential store.
	CallerKey = "caller"
)

var ErrNoSession = errors.New("no session in context")

func Claims(c *fiber.Ctx) (*security.SessionClaims, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(*security.SessionClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// GetUserID extracts the user UUID from the session subject.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := Claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.Subject == "" {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(claims.Subject)
}

func GetRoles(c *fiber.Ctx) []string {
	claims, err := Claims(c)
	if err != nil {
		return nil
	}
	return claims.Roles
}

// IsAdmin uses the roles recorded in the session token, which may be stale
// until the token expires. Access scoping goes through Caller instead.
func IsAdmin(c *fiber.Ctx) bool {
	return slices.Contains(GetRoles(c), models.RoleAdmin)
}

// SetCaller records the caller resolved from current store roles.
func SetCaller(c *fiber.Ctx, caller access.Caller) {
	c.Locals(CallerKey, caller)
}

// Caller builds the access-scoping identity for the request. The caller set
// by SetCaller wins; without one the token roles are used. A request without
// a valid subject is rejected rather than treated as system context.
func Caller(c *fiber.Ctx) (access.Caller, error) {
	if caller, ok := c.Locals(CallerKey).(access.Caller); ok && caller.UserID != uuid.Nil {
		return caller, nil
	}

	userID, err := GetUserID(c)
	if err != nil {
		return access.Caller{}, err
	}
	if userID == uuid.Nil {
		return access.Caller{}, errors.New("empty subject")
	}
	return access.Caller{UserID: userID, IsAdmin: IsAdmin(c)}, nil
}
