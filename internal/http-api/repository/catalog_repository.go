package repository

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"

	"gorm.io/gorm"
)

// CatalogRepository is the read-only view of the novel/chapter catalog. The
// catalog itself is owned by the catalog service; this core consumes it by
// reference for chapter resolution and genre/author joins and never writes.
type CatalogRepository interface {
	GetChapter(ctx context.Context, chapterID int64) (*models.Chapter, error)
	GetNovel(ctx context.Context, novelID int64) (*models.Novel, error)
	GetNovels(ctx context.Context, novelIDs []int64) (map[int64]*models.Novel, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// GetChapter returns nil when the chapter id is unknown.
func (r *catalogRepository) GetChapter(ctx context.Context, chapterID int64) (*models.Chapter, error) {
	var ch models.Chapter
	if err := r.db.WithContext(ctx).First(&ch, chapterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}
	return &ch, nil
}

func (r *catalogRepository) GetNovel(ctx context.Context, novelID int64) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).Preload("Genres").First(&n, novelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get novel: %w", err)
	}
	return &n, nil
}

func (r *catalogRepository) GetNovels(ctx context.Context, novelIDs []int64) (map[int64]*models.Novel, error) {
	if len(novelIDs) == 0 {
		return map[int64]*models.Novel{}, nil
	}

	var list []models.Novel
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("id IN ?", novelIDs).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get novels: %w", err)
	}

	byID := make(map[int64]*models.Novel, len(list))
	for i := range list {
		byID[list[i].ID] = &list[i]
	}
	return byID, nil
}
