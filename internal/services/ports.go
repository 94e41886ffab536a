package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
)

// Stores return repository.ErrNotFound for absent rows and
// repository.ErrDuplicate for unique violations.

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	// CreateWithRole stores the user together with its first role, atomically.
	CreateWithRole(ctx context.Context, user *models.User, roleID uuid.UUID, assignedAt time.Time) error
	Update(ctx context.Context, user *models.User) error
	Roles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type RoleStore interface {
	FindByName(ctx context.Context, name string) (*models.Role, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	IssueSessionToken(user *models.User, roles []string) (string, error)
	IssueOpaqueToken() (string, error)
}

// EmailSender delivers account mail. Failures are logged by the caller and
// never undo the state change that triggered the mail.
type EmailSender interface {
	SendVerification(ctx context.Context, email, token, displayName string) error
	SendPasswordReset(ctx context.Context, email, token, displayName string) error
	SendWelcome(ctx context.Context, email, displayName string) error
}

type RoutineStore interface {
	// FindByID loads the routine with its ordered steps, their translations
	// and the routine's tags, regardless of IsActive.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Routine, error)
	// List returns every routine with steps and tags, active or not.
	List(ctx context.Context) ([]models.Routine, error)
	Create(ctx context.Context, routine *models.Routine) error
	Update(ctx context.Context, routine *models.Routine) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type StepStore interface {
	ListByRoutine(ctx context.Context, routineID uuid.UUID) ([]models.RoutineStep, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.RoutineStep, error)
	Create(ctx context.Context, step *models.RoutineStep) error
	Update(ctx context.Context, step *models.RoutineStep) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TranslationStore interface {
	ListByStep(ctx context.Context, stepID uuid.UUID) ([]models.StepTranslation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.StepTranslation, error)
	Create(ctx context.Context, translation *models.StepTranslation) error
	Update(ctx context.Context, translation *models.StepTranslation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LanguageStore interface {
	List(ctx context.Context) ([]models.Language, error)
	FindByCode(ctx context.Context, code string) (*models.Language, error)
	Create(ctx context.Context, language *models.Language) error
}

type TagStore interface {
	List(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	Attach(ctx context.Context, routineID, tagID uuid.UUID) error
	Detach(ctx context.Context, routineID, tagID uuid.UUID) error
}
