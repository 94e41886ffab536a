package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail matches the address exactly as stored.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "email_verification_token = ?", token)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.first(ctx, "password_reset_token = ?", token)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// CreateWithRole inserts the user and its first role link in one
// transaction. Either both rows exist afterwards or neither does.
func (r *UserRepository) CreateWithRole(ctx context.Context, user *models.User, roleID uuid.UUID, assignedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", translate(err))
		}
		link := models.UserRole{UserID: user.ID, RoleID: roleID, AssignedAt: assignedAt}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to assign role: %w", translate(err))
		}
		return nil
	})
}

// Update saves every column, including cleared token fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", translate(err))
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Roles returns the role names assigned to the user, empty for unknown users.
func (r *UserRepository) Roles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	names := make([]string, 0, 2)
	err := r.db.WithContext(ctx).
		Table("user_roles").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	return names, nil
}
