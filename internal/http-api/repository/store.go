package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// TimeRange is a half-open [From, To) scan window.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Store bundles the engagement repositories behind a single handle so the
// recorder can apply its writes as one atomic unit. Transact hands the
// callback a Store bound to the transaction; repositories obtained from it
// all see the same tx.
type Store interface {
	Progress() ProgressRepository
	History() HistoryRepository
	Pointers() PointerRepository
	Library() LibraryRepository
	Reviews() ReviewRepository
	Goals() GoalRepository
	Achievements() AchievementRepository

	Transact(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Progress() ProgressRepository        { return NewProgressRepository(s.db) }
func (s *gormStore) History() HistoryRepository          { return NewHistoryRepository(s.db) }
func (s *gormStore) Pointers() PointerRepository         { return NewPointerRepository(s.db) }
func (s *gormStore) Library() LibraryRepository          { return NewLibraryRepository(s.db) }
func (s *gormStore) Reviews() ReviewRepository           { return NewReviewRepository(s.db) }
func (s *gormStore) Goals() GoalRepository               { return NewGoalRepository(s.db) }
func (s *gormStore) Achievements() AchievementRepository { return NewAchievementRepository(s.db) }

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// isUniqueViolation unwraps postgres error code 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
