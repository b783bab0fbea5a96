package repository

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointerRepository interface {
	// Advance applies new = max(old, chapterNumber) atomically and reports
	// whether the pointer actually moved.
	Advance(ctx context.Context, userID string, novelID int64, chapterNumber int, at time.Time) (bool, error)
	Get(ctx context.Context, userID string, novelID int64) (*models.LibraryPointer, error)
	ListByUser(ctx context.Context, userID string) ([]models.LibraryPointer, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type pointerRepository struct {
	db *gorm.DB
}

func NewPointerRepository(db *gorm.DB) PointerRepository {
	return &pointerRepository{db: db}
}

// Advance is a compare-and-set on the chapter number, not on wall-clock
// order: a delayed completion event for a later chapter still wins over a
// fresher event for an earlier one. Equal or smaller numbers no-op without
// error.
func (r *pointerRepository) Advance(ctx context.Context, userID string, novelID int64, chapterNumber int, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_read_chapter": chapterNumber,
			"updated_at":        at,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "excluded.last_read_chapter > library_pointers.last_read_chapter"},
		}},
	}).Create(&models.LibraryPointer{
		UserID:          userID,
		NovelID:         novelID,
		LastReadChapter: chapterNumber,
		UpdatedAt:       at,
	})
	if res.Error != nil {
		return false, fmt.Errorf("advance pointer: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *pointerRepository) Get(ctx context.Context, userID string, novelID int64) (*models.LibraryPointer, error) {
	var ptr models.LibraryPointer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		First(&ptr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get pointer: %w", err)
	}
	return &ptr, nil
}

func (r *pointerRepository) ListByUser(ctx context.Context, userID string) ([]models.LibraryPointer, error) {
	var list []models.LibraryPointer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list pointers: %w", err)
	}
	return list, nil
}

func (r *pointerRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.LibraryPointer{}).Error; err != nil {
		return fmt.Errorf("delete user pointers: %w", err)
	}
	return nil
}
