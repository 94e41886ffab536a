// Package seed installs the reference data the service needs to run: the
// Admin and User roles, a bootstrap administrator and the supported
// languages. Every step is idempotent.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/repository"
	"github.com/google/uuid"
)

type RoleStore interface {
	EnsureRole(ctx context.Context, name, description string) (*models.Role, error)
}

type UserStore interface {
	Count(ctx context.Context) (int64, error)
	CreateWithRole(ctx context.Context, user *models.User, roleID uuid.UUID, assignedAt time.Time) error
}

type LanguageStore interface {
	FindByCode(ctx context.Context, code string) (*models.Language, error)
	Create(ctx context.Context, language *models.Language) error
}

type Hasher interface {
	Hash(password string) (string, error)
}

var defaultRoles = []models.Role{
	{Name: models.RoleAdmin, Description: "Administrator with full access"},
	{Name: models.RoleUser, Description: "Regular user with limited access"},
}

var DefaultLanguages = []models.Language{
	{Code: "SWE", Name: "Svenska"},
	{Code: "ENG", Name: "Engelska"},
	{Code: "ARB", Name: "Arabiska"},
	{Code: "SOM", Name: "Somaliska"},
	{Code: "POL", Name: "Polska"},
	{Code: "FIN", Name: "Finska"},
}

type Seeder struct {
	Roles     RoleStore
	Users     UserStore
	Languages LanguageStore
	Hasher    Hasher
	Logger    *slog.Logger
	Now       func() time.Time
}

type AdminCredentials struct {
	Email    string
	Password string
}

func (s *Seeder) Run(ctx context.Context, admin AdminCredentials) error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Now == nil {
		s.Now = time.Now
	}

	roles, err := s.seedRoles(ctx)
	if err != nil {
		return err
	}
	if err := s.seedAdmin(ctx, admin, roles[models.RoleAdmin]); err != nil {
		return err
	}
	return s.seedLanguages(ctx)
}

func (s *Seeder) seedRoles(ctx context.Context) (map[string]*models.Role, error) {
	out := make(map[string]*models.Role, len(defaultRoles))
	for _, r := range defaultRoles {
		role, err := s.Roles.EnsureRole(ctx, r.Name, r.Description)
		if err != nil {
			return nil, err
		}
		out[r.Name] = role
	}
	s.Logger.Info("roles seeded", "count", len(out))
	return out, nil
}

// seedAdmin creates a verified administrator, but only into an empty user table.
func (s *Seeder) seedAdmin(ctx context.Context, creds AdminCredentials, adminRole *models.Role) error {
	n, err := s.Users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if creds.Email == "" || creds.Password == "" {
		s.Logger.Warn("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set, skipping admin bootstrap")
		return nil
	}

	hash, err := s.Hasher.Hash(creds.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := s.Now()
	admin := &models.User{
		ID:              uuid.New(),
		Email:           creds.Email,
		PasswordHash:    hash,
		FirstName:       "System",
		LastName:        "Administrator",
		IsActive:        true,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Users.CreateWithRole(ctx, admin, adminRole.ID, now); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.Logger.Info("bootstrap admin created", "user_id", admin.ID, "email", admin.Email)
	return nil
}

func (s *Seeder) seedLanguages(ctx context.Context) error {
	created := 0
	for _, l := range DefaultLanguages {
		_, err := s.Languages.FindByCode(ctx, l.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up language %s: %w", l.Code, err)
		}

		language := l
		language.ID = uuid.New()
		if err := s.Languages.Create(ctx, &language); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("failed to create language %s: %w", l.Code, err)
		}
		created++
	}
	s.Logger.Info("languages seeded", "created", created)
	return nil
}
