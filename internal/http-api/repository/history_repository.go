package repository

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	Upsert(ctx context.Context, entry *models.HistoryEntry) error
	ListByUser(ctx context.Context, userID string, window *TimeRange) ([]models.HistoryEntry, error)
	ListByUserAndNovel(ctx context.Context, userID string, novelID int64) ([]models.HistoryEntry, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert keeps one logical entry per (user, chapter); ReadAt and the
// completed flag are refreshed on every visit.
func (r *historyRepository) Upsert(ctx context.Context, entry *models.HistoryEntry) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"novel_id", "completed", "read_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	return nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID string, window *TimeRange) ([]models.HistoryEntry, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if window != nil {
		q = q.Where("read_at >= ? AND read_at < ?", window.From, window.To)
	}

	var entries []models.HistoryEntry
	if err := q.Order("read_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) ListByUserAndNovel(ctx context.Context, userID string, novelID int64) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Order("read_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list novel history: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.HistoryEntry{}).Error; err != nil {
		return fmt.Errorf("delete user history: %w", err)
	}
	return nil
}
