package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	res, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.LoginResponse{
		Token: res.Token,
		User:  toUserResponse(res.User, res.Roles),
	})
}

// Register creates an account on behalf of the authenticated administrator.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	adminID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	res, err := h.authService.RegisterUser(c.UserContext(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, adminID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		UserID:  res.UserID,
		Message: res.Message,
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	msg, err := h.authService.VerifyEmail(c.UserContext(), req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.RequestPasswordResetRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	msg, err := h.authService.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	msg, err := h.authService.ResetPassword(c.UserContext(), req.Token, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.authService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	roles, err := h.authService.GetUserRoles(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toUserResponse(user, roles))
}

func toUserResponse(user *models.User, roles []string) dto.UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		IsEmailVerified: user.IsEmailVerified,
		LastLoginAt:     user.LastLoginAt,
		Roles:           roles,
	}
}
