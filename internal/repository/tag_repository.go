package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", translate(err))
	}
	return nil
}

func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	res := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", tag.ID).
		Update("name", tag.Name)
	if res.Error != nil {
		return fmt.Errorf("failed to update tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Attach links a tag to a routine. Linking twice is a no-op.
func (r *TagRepository) Attach(ctx context.Context, routineID, tagID uuid.UUID) error {
	err := r.db.WithContext(ctx).Exec(
		"INSERT INTO routine_tags (routine_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		routineID, tagID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Detach(ctx context.Context, routineID, tagID uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(
		"DELETE FROM routine_tags WHERE routine_id = ? AND tag_id = ?",
		routineID, tagID,
	)
	if res.Error != nil {
		return fmt.Errorf("failed to detach tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
