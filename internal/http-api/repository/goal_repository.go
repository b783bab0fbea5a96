package repository

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository interface {
	Upsert(ctx context.Context, goal *models.ReadingGoal) error
	Get(ctx context.Context, userID string) (*models.ReadingGoal, error)
	Delete(ctx context.Context, userID string) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Upsert(ctx context.Context, goal *models.ReadingGoal) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "target", "starts_at", "ends_at", "updated_at"}),
	}).Create(goal).Error
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (r *goalRepository) Get(ctx context.Context, userID string) (*models.ReadingGoal, error) {
	var goal models.ReadingGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // no goal set
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &goal, nil
}

func (r *goalRepository) Delete(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ReadingGoal{}).Error; err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
