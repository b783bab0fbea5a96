package service

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

// GoalStatus is a reading goal with its derived fields filled in. Current is
// always recomputed from the ledger, never stored.
type GoalStatus struct {
	models.ReadingGoal

	Current       int  `json:"current"`
	IsCompleted   bool `json:"is_completed"`
	IsActive      bool `json:"is_active"`
	DaysRemaining int  `json:"days_remaining"`
}

type GoalService interface {
	SetGoal(ctx context.Context, userID string, goalType models.GoalType, target int, startsAt, endsAt time.Time) error
	GetGoal(ctx context.Context, userID string) (*GoalStatus, error)
	DeleteGoal(ctx context.Context, userID string) error
}

type goalService struct {
	store repository.Store
	stats StatsService
	now   func() time.Time
}

func NewGoalService(store repository.Store, stats StatsService) GoalService {
	return &goalService{
		store: store,
		stats: stats,
		now:   time.Now,
	}
}

func (s *goalService) SetGoal(ctx context.Context, userID string, goalType models.GoalType, target int, startsAt, endsAt time.Time) error {
	if !goalType.Valid() {
		return fmt.Errorf("goal type %q: %w", goalType, ErrInvalidArgument)
	}
	if target <= 0 {
		return fmt.Errorf("goal target %d: %w", target, ErrInvalidArgument)
	}
	if !endsAt.After(startsAt) {
		return fmt.Errorf("goal window ends before it starts: %w", ErrInvalidArgument)
	}

	return s.store.Goals().Upsert(ctx, &models.ReadingGoal{
		UserID:   userID,
		Type:     goalType,
		Target:   target,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	})
}

// GetGoal returns nil when the user has no goal set.
func (s *goalService) GetGoal(ctx context.Context, userID string) (*GoalStatus, error) {
	goal, err := s.store.Goals().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	stats, err := s.stats.AggregateStats(ctx, userID, &Window{From: goal.StartsAt, To: goal.EndsAt})
	if err != nil {
		return nil, fmt.Errorf("goal stats: %w", err)
	}

	return evaluateGoal(goal, stats, s.now()), nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID string) error {
	return s.store.Goals().Delete(ctx, userID)
}

// evaluateGoal selects the sub-metric matching the goal's type from the
// window-restricted stats and derives completion/activity state.
func evaluateGoal(goal *models.ReadingGoal, stats *AggregateStats, now time.Time) *GoalStatus {
	status := &GoalStatus{ReadingGoal: *goal}

	switch goal.Type {
	case models.GoalChaptersPerDay, models.GoalChaptersPerWeek, models.GoalChaptersPerMonth:
		status.Current = stats.TotalChapters
	case models.GoalNovelsPerMonth:
		status.Current = stats.TotalNovels
	case models.GoalMinutesPerDay:
		status.Current = int(stats.ReadingSeconds / 60)
	}

	status.IsCompleted = status.Current >= goal.Target
	status.IsActive = !now.Before(goal.StartsAt) && now.Before(goal.EndsAt)

	if remaining := goal.EndsAt.Sub(now); remaining > 0 {
		status.DaysRemaining = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}

	return status
}
