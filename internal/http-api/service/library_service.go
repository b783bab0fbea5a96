package service

import (
	"context"
	"errors"
	"fmt"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

// LibraryService manages the user's shelf. Shelf membership is what the
// completion rate is computed over; the category labels feed achievements.
type LibraryService interface {
	Add(ctx context.Context, userID string, novelID int64, category string) error
	Remove(ctx context.Context, userID string, novelID int64) error
	List(ctx context.Context, userID string) ([]models.LibraryItem, error)
}

type libraryService struct {
	store   repository.Store
	catalog repository.CatalogRepository
}

func NewLibraryService(store repository.Store, catalog repository.CatalogRepository) LibraryService {
	return &libraryService{store: store, catalog: catalog}
}

func (s *libraryService) Add(ctx context.Context, userID string, novelID int64, category string) error {
	novel, err := s.catalog.GetNovel(ctx, novelID)
	if err != nil {
		return fmt.Errorf("resolve novel: %w", err)
	}
	if novel == nil {
		return fmt.Errorf("novel %d: %w", novelID, ErrNotFound)
	}

	err = s.store.Library().Add(ctx, &models.LibraryItem{
		UserID:   userID,
		NovelID:  novelID,
		Category: category,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// Adding a shelved novel twice is a no-op, not an error.
		return nil
	}
	return err
}

func (s *libraryService) Remove(ctx context.Context, userID string, novelID int64) error {
	return s.store.Library().Remove(ctx, userID, novelID)
}

func (s *libraryService) List(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	return s.store.Library().List(ctx, userID)
}
