package repository

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *models.Review) error
	GetByUserAndNovel(ctx context.Context, userID string, novelID int64) (*models.Review, error)
	ListByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.Review, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	AverageByNovel(ctx context.Context, novelID int64) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "body", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetByUserAndNovel(ctx context.Context, userID string, novelID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		First(&review).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("novel_id = ?", novelID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("novel_id = ?", novelID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count user reviews: %w", err)
	}
	return count, nil
}

func (r *reviewRepository) AverageByNovel(ctx context.Context, novelID int64) (float64, error) {
	var avg struct {
		Average float64
	}
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("novel_id = ?", novelID).
		Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg.Average, nil
}
