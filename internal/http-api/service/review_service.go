package service

import (
	"context"
	"fmt"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

type ReviewService interface {
	UpsertReview(ctx context.Context, userID string, novelID int64, rating int, body string) error
	ListByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	store   repository.Store
	catalog repository.CatalogRepository
}

func NewReviewService(store repository.Store, catalog repository.CatalogRepository) ReviewService {
	return &reviewService{store: store, catalog: catalog}
}

func (s *reviewService) UpsertReview(ctx context.Context, userID string, novelID int64, rating int, body string) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("rating %d out of range: %w", rating, ErrInvalidArgument)
	}

	novel, err := s.catalog.GetNovel(ctx, novelID)
	if err != nil {
		return fmt.Errorf("resolve novel: %w", err)
	}
	if novel == nil {
		return fmt.Errorf("novel %d: %w", novelID, ErrNotFound)
	}

	return s.store.Reviews().Upsert(ctx, &models.Review{
		UserID:  userID,
		NovelID: novelID,
		Rating:  rating,
		Body:    body,
	})
}

func (s *reviewService) ListByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.Reviews().ListByNovel(ctx, novelID, page, pageSize)
}
