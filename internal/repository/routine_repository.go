package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoutineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("routine_steps.step_order ASC")
}

// FindByID returns the routine whatever its IsActive flag, with ordered
// steps, step translations and tags.
func (r *RoutineRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Routine, error) {
	var routine models.Routine
	err := r.db.WithContext(ctx).
		Preload("Steps", orderedSteps).
		Preload("Steps.Translations.Language").
		Preload("Tags").
		First(&routine, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &routine, nil
}

// List returns all routines, newest first. Visibility filtering happens in
// the access package, not here.
func (r *RoutineRepository) List(ctx context.Context) ([]models.Routine, error) {
	routines := make([]models.Routine, 0)
	err := r.db.WithContext(ctx).
		Preload("Steps", orderedSteps).
		Preload("Tags").
		Order("created_at DESC").
		Find(&routines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, nil
}

// Create inserts the routine together with its steps.
func (r *RoutineRepository) Create(ctx context.Context, routine *models.Routine) error {
	if err := r.db.WithContext(ctx).Omit("Tags").Create(routine).Error; err != nil {
		return fmt.Errorf("failed to create routine: %w", translate(err))
	}
	return nil
}

// Update writes the editable columns only. Steps, tags and the active flag
// have their own paths.
func (r *RoutineRepository) Update(ctx context.Context, routine *models.Routine) error {
	res := r.db.WithContext(ctx).
		Model(&models.Routine{}).
		Where("id = ?", routine.ID).
		Updates(map[string]any{
			"title":                routine.Title,
			"category":             routine.Category,
			"simple_description":   routine.SimpleDescription,
			"original_description": routine.OriginalDescription,
			"is_template":          routine.IsTemplate,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update routine: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoutineRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Routine{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to set routine active flag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
