package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StepRepository struct {
	db *gorm.DB
}

func NewStepRepository(db *gorm.DB) *StepRepository {
	return &StepRepository{db: db}
}

func (r *StepRepository) ListByRoutine(ctx context.Context, routineID uuid.UUID) ([]models.RoutineStep, error) {
	steps := make([]models.RoutineStep, 0)
	err := r.db.WithContext(ctx).
		Preload("Translations.Language").
		Where("routine_id = ?", routineID).
		Order("step_order ASC").
		Find(&steps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	return steps, nil
}

func (r *StepRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.RoutineStep, error) {
	var step models.RoutineStep
	if err := r.db.WithContext(ctx).First(&step, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &step, nil
}

func (r *StepRepository) Create(ctx context.Context, step *models.RoutineStep) error {
	if err := r.db.WithContext(ctx).Omit("Translations").Create(step).Error; err != nil {
		return fmt.Errorf("failed to create step: %w", translate(err))
	}
	return nil
}

func (r *StepRepository) Update(ctx context.Context, step *models.RoutineStep) error {
	res := r.db.WithContext(ctx).
		Model(&models.RoutineStep{}).
		Where("id = ?", step.ID).
		Updates(map[string]any{
			"step_order":    step.Order,
			"simple_text":   step.SimpleText,
			"original_text": step.OriginalText,
			"icon_key":      step.IconKey,
			"image_url":     step.ImageURL,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update step: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the step; its translations go with it through the foreign key.
func (r *StepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.RoutineStep{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete step: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
