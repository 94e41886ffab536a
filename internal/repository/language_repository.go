package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"gorm.io/gorm"
)

type LanguageRepository struct {
	db *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

func (r *LanguageRepository) List(ctx context.Context) ([]models.Language, error) {
	languages := make([]models.Language, 0)
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (r *LanguageRepository) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&language).Error; err != nil {
		return nil, translate(err)
	}
	return &language, nil
}

// Create fails with ErrDuplicate when the code is taken.
func (r *LanguageRepository) Create(ctx context.Context, language *models.Language) error {
	if err := r.db.WithContext(ctx).Create(language).Error; err != nil {
		return fmt.Errorf("failed to create language: %w", translate(err))
	}
	return nil
}
