package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
	"novelhub/pkg/metrics"

	"github.com/google/uuid"
)

// ProgressService is the event recorder: the single write path into the
// progress store, the history ledger and the library pointer.
type ProgressService interface {
	RecordProgress(ctx context.Context, userID string, chapterID int64, percentage float64, cursorPosition int, completed bool) error
	GetProgress(ctx context.Context, userID string, chapterID int64) (*models.ProgressRecord, error)
	GetLastReadChapter(ctx context.Context, userID string, novelID int64) (*models.LibraryPointer, error)
	ClearAllHistory(ctx context.Context, userID string) error
}

type progressService struct {
	store   repository.Store
	catalog repository.CatalogRepository
	privacy repository.PrivacyStore
	logger  *slog.Logger
	now     func() time.Time
}

func NewProgressService(
	store repository.Store,
	catalog repository.CatalogRepository,
	privacy repository.PrivacyStore,
	logger *slog.Logger,
) ProgressService {
	return &progressService{
		store:   store,
		catalog: catalog,
		privacy: privacy,
		logger:  logger,
		now:     time.Now,
	}
}

// RecordProgress persists one reading event. The privacy check runs before
// anything else: with privacy mode on the call succeeds with zero writes, so
// toggling the mode mid-session can never leave partially-applied state.
//
// The three writes happen inside one transaction, in the order
// Progress -> History -> Pointer. The pointer advance is conditional (only
// strictly greater chapter numbers apply) and therefore safe to lose; it can
// be rebuilt from history plus catalog chapter counts.
func (s *progressService) RecordProgress(ctx context.Context, userID string, chapterID int64, percentage float64, cursorPosition int, completed bool) error {
	private, err := s.privacy.PrivacyMode(ctx, userID)
	if err != nil {
		metrics.ProgressEvents.WithLabelValues("error").Inc()
		return fmt.Errorf("check privacy mode: %w", err)
	}
	if private {
		metrics.PrivacySuppressed.Inc()
		s.logger.Debug("progress suppressed by privacy mode", "user_id", userID, "chapter_id", chapterID)
		return nil
	}

	if err := uuid.Validate(userID); err != nil {
		metrics.ProgressEvents.WithLabelValues("invalid").Inc()
		return fmt.Errorf("user id %q: %w", userID, ErrInvalidArgument)
	}
	if percentage < 0 || percentage > 100 {
		metrics.ProgressEvents.WithLabelValues("invalid").Inc()
		return fmt.Errorf("percentage %.1f out of range: %w", percentage, ErrInvalidArgument)
	}
	if cursorPosition < 0 {
		metrics.ProgressEvents.WithLabelValues("invalid").Inc()
		return fmt.Errorf("cursor position %d negative: %w", cursorPosition, ErrInvalidArgument)
	}

	chapter, err := s.catalog.GetChapter(ctx, chapterID)
	if err != nil {
		metrics.ProgressEvents.WithLabelValues("error").Inc()
		return fmt.Errorf("resolve chapter: %w", err)
	}
	if chapter == nil {
		metrics.ProgressEvents.WithLabelValues("not_found").Inc()
		return fmt.Errorf("chapter %d: %w", chapterID, ErrNotFound)
	}

	// Completion implies a fully read chapter regardless of the reported
	// fraction.
	if completed {
		percentage = 100
	}

	now := s.now()
	err = s.store.Transact(ctx, func(tx repository.Store) error {
		if err := tx.Progress().Upsert(ctx, &models.ProgressRecord{
			UserID:         userID,
			ChapterID:      chapterID,
			Percentage:     percentage,
			CursorPosition: cursorPosition,
			Completed:      completed,
			LastReadAt:     now,
		}); err != nil {
			return err
		}

		if err := tx.History().Upsert(ctx, &models.HistoryEntry{
			UserID:    userID,
			ChapterID: chapterID,
			NovelID:   chapter.NovelID,
			Completed: completed,
			ReadAt:    now,
		}); err != nil {
			return err
		}

		if !completed {
			return nil
		}
		advanced, err := tx.Pointers().Advance(ctx, userID, chapter.NovelID, chapter.Number, now)
		if err != nil {
			return err
		}
		if advanced {
			metrics.PointerAdvances.Inc()
		}
		return nil
	})
	if err != nil {
		metrics.ProgressEvents.WithLabelValues("error").Inc()
		return fmt.Errorf("record progress: %w", err)
	}

	metrics.ProgressEvents.WithLabelValues("recorded").Inc()
	return nil
}

func (s *progressService) GetProgress(ctx context.Context, userID string, chapterID int64) (*models.ProgressRecord, error) {
	return s.store.Progress().Get(ctx, userID, chapterID)
}

func (s *progressService) GetLastReadChapter(ctx context.Context, userID string, novelID int64) (*models.LibraryPointer, error) {
	return s.store.Pointers().Get(ctx, userID, novelID)
}

// ClearAllHistory wipes every engagement record of the user in one
// transaction. This backs an explicit, destructive user action; failures are
// surfaced so the caller knows the wipe did not complete.
func (s *progressService) ClearAllHistory(ctx context.Context, userID string) error {
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		if err := tx.Progress().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.History().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Pointers().DeleteByUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.logger.Info("reading history cleared", "user_id", userID)
	return nil
}
