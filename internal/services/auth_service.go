package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/security"
	"github.com/google/uuid"
)

const (
	DefaultVerificationTTL = 7 * 24 * time.Hour
	DefaultResetTTL        = time.Hour

	// PasswordResetRequestedMessage is returned whether or not the address exists.
	PasswordResetRequestedMessage = "If the email exists in the system, a reset email has been sent"
)

type AuthDependencies struct {
	Users  UserStore
	Roles  RoleStore
	Hasher PasswordHasher
	Tokens TokenIssuer
	Mailer EmailSender

	Clock  func() time.Time
	Logger *slog.Logger

	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

// AuthService runs the credential lifecycle: login, admin-initiated
// registration, email verification and password reset.
type AuthService struct {
	users  UserStore
	roles  RoleStore
	hasher PasswordHasher
	tokens TokenIssuer
	mailer EmailSender

	now    func() time.Time
	logger *slog.Logger

	verificationTTL time.Duration
	resetTTL        time.Duration
}

func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		users:           deps.Users,
		roles:           deps.Roles,
		hasher:          deps.Hasher,
		tokens:          deps.Tokens,
		mailer:          deps.Mailer,
		now:             deps.Clock,
		logger:          deps.Logger,
		verificationTTL: deps.VerificationTTL,
		resetTTL:        deps.ResetTTL,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.verificationTTL <= 0 {
		s.verificationTTL = DefaultVerificationTTL
	}
	if s.resetTTL <= 0 {
		s.resetTTL = DefaultResetTTL
	}
	return s
}

type LoginResult struct {
	Token string
	User  *models.User
	Roles []string
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterResult struct {
	UserID  uuid.UUID
	Message string
}

// Login never reveals which check failed. A failed attempt writes nothing;
// a successful one writes the user exactly once.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.logger.Info("login attempt", "email", email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("login rejected: unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	switch {
	case !user.IsActive:
		s.logger.Warn("login rejected: inactive user", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	case !user.IsEmailVerified:
		s.logger.Warn("login rejected: email not verified", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	case !s.hasher.Verify(password, user.PasswordHash):
		s.logger.Warn("login rejected: wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	roles, err := s.users.Roles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	token, err := s.tokens.IssueSessionToken(user, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.Info("login succeeded", "user_id", user.ID)
	return &LoginResult{Token: token, User: user, Roles: roles}, nil
}

// RegisterUser creates an unverified account on behalf of an administrator
// and mails the verification token. The token is never returned.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput, adminID uuid.UUID) (*RegisterResult, error) {
	s.logger.Info("registering user", "email", in.Email, "admin_id", adminID)

	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		s.logger.Warn("registration rejected: email in use", "email", in.Email)
		return nil, newError(KindConflict, "email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	role, err := s.roles.FindByName(ctx, models.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("registration failed: default role missing", "role", models.RoleUser)
			return nil, fmt.Errorf("default role %q is not seeded: %w", models.RoleUser, err)
		}
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.SetVerificationToken(token, now.Add(s.verificationTTL))

	if err := s.users.CreateWithRole(ctx, user, role.ID, now); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Warn("registration rejected: email in use", "email", in.Email)
			return nil, newError(KindConflict, "email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, user.Email, token, user.DisplayName()); err != nil {
		s.logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return &RegisterResult{UserID: user.ID, Message: "User registered. Verification email sent."}, nil
}

// hashPassword reports passwords bcrypt cannot take as invalid input.
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case err == nil:
		return hash, nil
	case errors.Is(err, security.ErrPasswordTooLong):
		return "", newError(KindInvalid, fmt.Sprintf("password must be at most %d bytes", security.MaxPasswordBytes))
	case errors.Is(err, security.ErrEmptyPassword):
		return "", newError(KindInvalid, "password is required")
	default:
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
}

func (s *AuthService) requireAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := s.users.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("registration rejected: admin not found", "admin_id", adminID)
			return newError(KindForbidden, "admin not found")
		}
		return fmt.Errorf("failed to load admin: %w", err)
	}
	if !admin.IsActive {
		s.logger.Warn("registration rejected: admin inactive", "admin_id", adminID)
		return newError(KindForbidden, "only administrators can register users")
	}

	roles, err := s.users.Roles(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to load admin roles: %w", err)
	}
	if !slices.Contains(roles, models.RoleAdmin) {
		s.logger.Warn("registration rejected: caller is not admin", "admin_id", adminID)
		return newError(KindForbidden, "only administrators can register users")
	}
	return nil
}

// VerifyEmail marks the account verified. An expired token is left in place.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	s.logger.Info("verifying email")

	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("email verification rejected: unknown token")
			return "", newError(KindNotFound, "invalid verification token")
		}
		return "", fmt.Errorf("failed to load user by verification token: %w", err)
	}

	if tokenExpired(user.EmailVerificationTokenExpiry, s.now()) {
		s.logger.Warn("email verification rejected: token expired", "user_id", user.ID)
		return "", newError(KindExpired, "verification token has expired")
	}

	user.IsEmailVerified = true
	user.ClearVerificationToken()
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to verify email: %w", err)
	}

	if err := s.mailer.SendWelcome(ctx, user.Email, user.DisplayName()); err != nil {
		s.logger.Error("failed to send welcome email", "user_id", user.ID, "error", err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return "Email verified successfully", nil
}

// RequestPasswordReset answers identically for known and unknown addresses.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	s.logger.Info("password reset requested", "email", email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PasswordResetRequestedMessage, nil
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	token, err := s.tokens.IssueOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	now := s.now()
	user.SetResetToken(token, now.Add(s.resetTTL))
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token, user.DisplayName()); err != nil {
		s.logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
	}

	return PasswordResetRequestedMessage, nil
}

// ResetPassword replaces the password hash and clears the reset token.
// Verification state and existing sessions are left untouched.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	s.logger.Info("resetting password")

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("password reset rejected: unknown token")
			return "", newError(KindNotFound, "invalid reset token")
		}
		return "", fmt.Errorf("failed to load user by reset token: %w", err)
	}

	if tokenExpired(user.PasswordResetTokenExpiry, s.now()) {
		s.logger.Warn("password reset rejected: token expired", "user_id", user.ID)
		return "", newError(KindExpired, "reset token has expired")
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return "", err
	}

	user.PasswordHash = hash
	user.ClearResetToken()
	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("password reset", "user_id", user.ID)
	return "Password reset successfully", nil
}

// GetUserRoles returns an empty set, not an error, for unknown users.
func (s *AuthService) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	roles, err := s.users.Roles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// tokenExpired treats a missing expiry as expired.
func tokenExpired(expiry *time.Time, now time.Time) bool {
	return expiry == nil || now.After(*expiry)
}
