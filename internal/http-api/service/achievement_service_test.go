package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelhub/internal/http-api/models"
)

// statsStub satisfies StatsService with canned aggregates so the evaluator
// tests do not re-test the aggregation path.
type statsStub struct {
	stats AggregateStats
}

func (s *statsStub) AggregateStats(_ context.Context, _ string, _ *Window) (*AggregateStats, error) {
	cp := s.stats
	return &cp, nil
}

func (s *statsStub) AddReadingTime(_ context.Context, _ string, _ int64) error { return nil }

func achievementByID(t *testing.T, list []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range list {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in results", id)
	return Achievement{}
}

func TestEvaluateAchievements_Thresholds(t *testing.T) {
	stats := &AggregateStats{
		TotalChapters:  150,
		TotalNovels:    1,
		LongestStreak:  7,
		ReadingSeconds: 25 * 3600,
		GenreBreakdown: []GenreStat{{Genre: "Fantasy"}, {Genre: "Sci-Fi"}},
	}

	results := evaluateAchievements(stats, 1, 0, nil)
	require.Len(t, results, len(definitions))

	tests := []struct {
		id           string
		wantProgress int
		wantUnlocked bool
	}{
		{"first_chapter", 150, true},
		{"chapters_100", 150, true},
		{"chapters_1000", 150, false},
		{"first_novel", 1, true},
		{"novels_10", 1, false},
		{"streak_7", 7, true},
		{"streak_30", 7, false},
		{"genres_5", 2, false},
		{"hours_24", 25, true},
		{"hours_100", 25, false},
		{"first_review", 1, true},
		{"reviews_10", 1, false},
		{"categories_3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a := achievementByID(t, results, tt.id)
			assert.Equal(t, tt.wantProgress, a.Progress)
			assert.Equal(t, tt.wantUnlocked, a.Unlocked)
		})
	}
}

func TestEvaluateAchievements_PersistedUnlockWins(t *testing.T) {
	unlockedAt := map[string]time.Time{
		"chapters_100": time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	// Stats dropped back below the threshold (history cleared).
	results := evaluateAchievements(&AggregateStats{TotalChapters: 3}, 0, 0, unlockedAt)

	a := achievementByID(t, results, "chapters_100")
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, unlockedAt["chapters_100"], *a.UnlockedAt)
	assert.Equal(t, 3, a.Progress, "progress still reflects the live stat")
}

func TestGetAchievements_PersistsFirstUnlock(t *testing.T) {
	store := newMemStore()
	stats := &statsStub{stats: AggregateStats{TotalChapters: 1}}
	svc := NewAchievementService(store, stats, testLogger()).(*achievementService)

	first := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	ctx := context.Background()
	results, err := svc.GetAchievements(ctx, testUserID)
	require.NoError(t, err)

	a := achievementByID(t, results, "first_chapter")
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, first, *a.UnlockedAt)

	// The unlock survives a stat reset, keeping its original timestamp.
	stats.stats = AggregateStats{}
	svc.now = func() time.Time { return first.Add(48 * time.Hour) }

	results, err = svc.GetAchievements(ctx, testUserID)
	require.NoError(t, err)
	a = achievementByID(t, results, "first_chapter")
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, first, *a.UnlockedAt)
}

func TestCountCategories(t *testing.T) {
	shelf := []models.LibraryItem{
		{NovelID: 1, Category: "reading"},
		{NovelID: 2, Category: "reading"},
		{NovelID: 3, Category: "favorites"},
		{NovelID: 4, Category: ""},
	}
	assert.Equal(t, 2, countCategories(shelf))
	assert.Zero(t, countCategories(nil))
}
