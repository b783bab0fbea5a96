package repository

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// RecordUnlock remembers the first time a threshold was crossed.
	// Re-recording an existing unlock is a no-op; the original timestamp wins.
	RecordUnlock(ctx context.Context, userID, achievementID string, at time.Time) error
	ListByUser(ctx context.Context, userID string) ([]models.UserAchievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) RecordUnlock(ctx context.Context, userID, achievementID string, at time.Time) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}).Error
	if err != nil {
		return fmt.Errorf("record unlock: %w", err)
	}
	return nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	var list []models.UserAchievement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	return list, nil
}
