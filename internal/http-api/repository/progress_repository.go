package repository

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, rec *models.ProgressRecord) error
	Get(ctx context.Context, userID string, chapterID int64) (*models.ProgressRecord, error)
	GetByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert writes the record in a single ON CONFLICT statement; concurrent
// writers for the same (user, chapter) cannot interleave.
func (r *progressRepository) Upsert(ctx context.Context, rec *models.ProgressRecord) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"percentage", "cursor_position", "completed", "last_read_at",
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepository) Get(ctx context.Context, userID string, chapterID int64) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // no progress yet
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &rec, nil
}

func (r *progressRepository) GetByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error) {
	var list []models.ProgressRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_read_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get user progress: %w", err)
	}
	return list, nil
}

func (r *progressRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ProgressRecord{}).Error; err != nil {
		return fmt.Errorf("delete user progress: %w", err)
	}
	return nil
}
