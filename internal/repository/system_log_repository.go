package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"gorm.io/gorm"
)

const logBatchSize = 50

type SystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) *SystemLogRepository {
	return &SystemLogRepository{db: db}
}

func (r *SystemLogRepository) CreateBatch(ctx context.Context, logs []models.SystemLog) error {
	if len(logs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(logs, logBatchSize).Error; err != nil {
		return fmt.Errorf("failed to write system logs: %w", err)
	}
	return nil
}

// DeleteBefore removes log rows recorded before cutoff and reports how many went.
func (r *SystemLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune system logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
