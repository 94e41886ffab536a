package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func (r *TranslationRepository) ListByStep(ctx context.Context, stepID uuid.UUID) ([]models.StepTranslation, error) {
	translations := make([]models.StepTranslation, 0)
	err := r.db.WithContext(ctx).
		Preload("Language").
		Where("routine_step_id = ?", stepID).
		Find(&translations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}
	return translations, nil
}

func (r *TranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.StepTranslation, error) {
	var translation models.StepTranslation
	if err := r.db.WithContext(ctx).Preload("Language").First(&translation, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &translation, nil
}

func (r *TranslationRepository) Create(ctx context.Context, translation *models.StepTranslation) error {
	if err := r.db.WithContext(ctx).Omit("Language").Create(translation).Error; err != nil {
		return fmt.Errorf("failed to create translation: %w", translate(err))
	}
	return nil
}

func (r *TranslationRepository) Update(ctx context.Context, translation *models.StepTranslation) error {
	res := r.db.WithContext(ctx).
		Model(&models.StepTranslation{}).
		Where("id = ?", translation.ID).
		Update("text", translation.Text)
	if res.Error != nil {
		return fmt.Errorf("failed to update translation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.StepTranslation{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete translation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
