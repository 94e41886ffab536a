package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// EnsureRole returns the named role, creating it on first use.
func (r *RoleRepository) EnsureRole(ctx context.Context, name, description string) (*models.Role, error) {
	role := models.Role{Name: name}
	err := r.db.WithContext(ctx).
		Where(models.Role{Name: name}).
		Attrs(models.Role{Description: description}).
		FirstOrCreate(&role).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure role %s: %w", name, err)
	}
	return &role, nil
}
