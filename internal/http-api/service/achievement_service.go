package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

// AchievementMetric names the stat an achievement threshold is compared
// against.
type AchievementMetric string

const (
	MetricChaptersRead    AchievementMetric = "chapters_read"
	MetricNovelsCompleted AchievementMetric = "novels_completed"
	MetricStreakDays      AchievementMetric = "streak_days"
	MetricGenresExplored  AchievementMetric = "genres_explored"
	MetricReadingHours    AchievementMetric = "reading_hours"
	MetricReviewsWritten  AchievementMetric = "reviews_written"
	MetricCategoriesUsed  AchievementMetric = "categories_used"
)

// Achievement is a threshold definition with its evaluated state filled in.
// Definitions are fixed in code; only the unlock timestamp is persisted.
type Achievement struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metric      AchievementMetric `json:"metric"`
	Target      int               `json:"target"`

	Progress   int        `json:"progress"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// definitions is the fixed achievement catalog.
var definitions = []Achievement{
	{ID: "first_chapter", Title: "First Steps", Description: "Read your first chapter", Metric: MetricChaptersRead, Target: 1},
	{ID: "chapters_100", Title: "Bookworm", Description: "Read 100 chapters", Metric: MetricChaptersRead, Target: 100},
	{ID: "chapters_1000", Title: "Voracious", Description: "Read 1000 chapters", Metric: MetricChaptersRead, Target: 1000},
	{ID: "first_novel", Title: "Finisher", Description: "Complete a novel", Metric: MetricNovelsCompleted, Target: 1},
	{ID: "novels_10", Title: "Collector", Description: "Complete 10 novels", Metric: MetricNovelsCompleted, Target: 10},
	{ID: "streak_7", Title: "One Week Strong", Description: "Read 7 days in a row", Metric: MetricStreakDays, Target: 7},
	{ID: "streak_30", Title: "Devoted", Description: "Read 30 days in a row", Metric: MetricStreakDays, Target: 30},
	{ID: "genres_5", Title: "Explorer", Description: "Read novels in 5 genres", Metric: MetricGenresExplored, Target: 5},
	{ID: "hours_24", Title: "Day Well Spent", Description: "Read for 24 hours total", Metric: MetricReadingHours, Target: 24},
	{ID: "hours_100", Title: "Century Reader", Description: "Read for 100 hours total", Metric: MetricReadingHours, Target: 100},
	{ID: "first_review", Title: "Critic", Description: "Write a review", Metric: MetricReviewsWritten, Target: 1},
	{ID: "reviews_10", Title: "Reviewer", Description: "Write 10 reviews", Metric: MetricReviewsWritten, Target: 10},
	{ID: "categories_3", Title: "Organized", Description: "Use 3 shelf categories", Metric: MetricCategoriesUsed, Target: 3},
}

// AchievementService evaluates the fixed achievement catalog against a
// user's aggregate stats and remembers first unlocks.
type AchievementService interface {
	GetAchievements(ctx context.Context, userID string) ([]Achievement, error)
}

type achievementService struct {
	store  repository.Store
	stats  StatsService
	logger *slog.Logger
	now    func() time.Time
}

func NewAchievementService(store repository.Store, stats StatsService, logger *slog.Logger) AchievementService {
	return &achievementService{
		store:  store,
		stats:  stats,
		logger: logger,
		now:    time.Now,
	}
}

func (s *achievementService) GetAchievements(ctx context.Context, userID string) ([]Achievement, error) {
	stats, err := s.stats.AggregateStats(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("achievement stats: %w", err)
	}
	reviews, err := s.store.Reviews().CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement reviews: %w", err)
	}
	shelf, err := s.store.Library().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement library: %w", err)
	}
	unlocks, err := s.store.Achievements().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement unlocks: %w", err)
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	results := evaluateAchievements(stats, int(reviews), countCategories(shelf), unlockedAt)

	// Persist freshly crossed thresholds so unlocks survive later stat
	// shrinkage (cleared history, removed reviews).
	now := s.now()
	for i, a := range results {
		if !a.Unlocked || a.UnlockedAt != nil {
			continue
		}
		if err := s.store.Achievements().RecordUnlock(ctx, userID, a.ID, now); err != nil {
			s.logger.Warn("failed to persist unlock", "achievement", a.ID, "error", err)
			continue
		}
		at := now
		results[i].UnlockedAt = &at
	}

	return results, nil
}

// evaluateAchievements is a pure function of its inputs: progress filled
// from the stats, unlocked iff progress >= target or previously persisted.
func evaluateAchievements(stats *AggregateStats, reviews, categories int, unlockedAt map[string]time.Time) []Achievement {
	results := make([]Achievement, len(definitions))
	for i, def := range definitions {
		a := def
		a.Progress = metricProgress(stats, reviews, categories, def.Metric)
		if at, ok := unlockedAt[a.ID]; ok {
			a.Unlocked = true
			t := at
			a.UnlockedAt = &t
		} else {
			a.Unlocked = a.Progress >= a.Target
		}
		results[i] = a
	}
	return results
}

func metricProgress(stats *AggregateStats, reviews, categories int, metric AchievementMetric) int {
	switch metric {
	case MetricChaptersRead:
		return stats.TotalChapters
	case MetricNovelsCompleted:
		return stats.TotalNovels
	case MetricStreakDays:
		return stats.LongestStreak
	case MetricGenresExplored:
		return len(stats.GenreBreakdown)
	case MetricReadingHours:
		return int(stats.ReadingSeconds / 3600)
	case MetricReviewsWritten:
		return reviews
	case MetricCategoriesUsed:
		return categories
	}
	return 0
}

func countCategories(shelf []models.LibraryItem) int {
	seen := make(map[string]struct{})
	for _, item := range shelf {
		if item.Category != "" {
			seen[item.Category] = struct{}{}
		}
	}
	return len(seen)
}
