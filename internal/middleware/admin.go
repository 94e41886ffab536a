package middleware

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RoleLookup resolves the current roles of a user from the credential store.
type RoleLookup interface {
	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// AdminRequired rejects callers that are not administrators. Roles come from
// the store, not the token.
func AdminRequired(roles RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		current, err := roles.GetUserRoles(c.UserContext(), userID)
		if err != nil {
			slog.Error("admin role lookup failed", "user_id", userID.String(), "error", err.Error())
			return err
		}
		if slices.Contains(current, models.RoleAdmin) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

// ResolveCaller loads the caller's current roles and stores the resulting
// access.Caller for handlers, so a revoked admin role takes effect before the
// session token expires.
func ResolveCaller(roles RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil || userID == uuid.Nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		current, err := roles.GetUserRoles(c.UserContext(), userID)
		if err != nil {
			slog.Error("caller role lookup failed", "user_id", userID.String(), "error", err.Error())
			return err
		}

		authctx.SetCaller(c, access.Caller{UserID: userID, IsAdmin: slices.Contains(current, models.RoleAdmin)})
		return c.Next()
	}
}
