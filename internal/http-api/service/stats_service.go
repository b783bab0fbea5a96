package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

// StatsService derives AggregateStats from the history ledger, the library
// pointers and the catalog. Pure read path: it never mutates the ledger,
// and catalog misses degrade to skipped rows instead of failures.
type StatsService interface {
	AggregateStats(ctx context.Context, userID string, window *Window) (*AggregateStats, error)
	AddReadingTime(ctx context.Context, userID string, seconds int64) error
}

type statsService struct {
	store       repository.Store
	catalog     repository.CatalogRepository
	readingTime repository.ReadingTimeStore
	logger      *slog.Logger
	now         func() time.Time
}

func NewStatsService(
	store repository.Store,
	catalog repository.CatalogRepository,
	readingTime repository.ReadingTimeStore,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		store:       store,
		catalog:     catalog,
		readingTime: readingTime,
		logger:      logger,
		now:         time.Now,
	}
}

// groupAcc accumulates one genre or author bucket during the ledger scan.
type groupAcc struct {
	chapters int
	novels   map[int64]struct{}
	lastRead time.Time
}

func (s *statsService) AggregateStats(ctx context.Context, userID string, window *Window) (*AggregateStats, error) {
	var tr *repository.TimeRange
	if window != nil {
		tr = &repository.TimeRange{From: window.From, To: window.To}
	}

	entries, err := s.store.History().ListByUser(ctx, userID, tr)
	if err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	pointers, err := s.store.Pointers().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("scan pointers: %w", err)
	}
	shelf, err := s.store.Library().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("scan library: %w", err)
	}

	novels, err := s.lookupNovels(ctx, entries, pointers, shelf)
	if err != nil {
		return nil, err
	}

	pointerByNovel := make(map[int64]int, len(pointers))
	for _, p := range pointers {
		pointerByNovel[p.NovelID] = p.LastReadChapter
	}

	stats := &AggregateStats{TotalChapters: len(entries)}

	s.fillActivity(stats, entries)
	s.fillBreakdowns(stats, entries, novels)
	s.fillNovelTotals(stats, entries, pointers, novels, window)
	s.fillCompletionRate(stats, shelf, pointerByNovel, novels)

	stats.ReadingSeconds, err = s.readingSeconds(ctx, userID, window)
	if err != nil {
		// The counter lives in a cache; a miss degrades the one pass-through
		// figure, not the whole aggregate.
		s.logger.Warn("reading time unavailable", "user_id", userID, "error", err)
	}

	return stats, nil
}

// AddReadingTime forwards a session timer tick into the running counter.
func (s *statsService) AddReadingTime(ctx context.Context, userID string, seconds int64) error {
	if seconds < 0 {
		return fmt.Errorf("seconds %d negative: %w", seconds, ErrInvalidArgument)
	}
	return s.readingTime.Add(ctx, userID, seconds, s.now())
}

// lookupNovels fetches every novel the computation touches in one catalog
// round trip.
func (s *statsService) lookupNovels(
	ctx context.Context,
	entries []models.HistoryEntry,
	pointers []models.LibraryPointer,
	shelf []models.LibraryItem,
) (map[int64]*models.Novel, error) {
	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, e := range entries {
		add(e.NovelID)
	}
	for _, p := range pointers {
		add(p.NovelID)
	}
	for _, item := range shelf {
		add(item.NovelID)
	}

	novels, err := s.catalog.GetNovels(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	return novels, nil
}

// fillActivity computes streaks, the hourly histogram and the last-7-days
// histogram from the ledger timestamps.
func (s *statsService) fillActivity(stats *AggregateStats, entries []models.HistoryEntry) {
	days := make(map[string]struct{})
	dayCounts := make(map[string]int)
	for _, e := range entries {
		key := dayKey(e.ReadAt)
		days[key] = struct{}{}
		dayCounts[key]++
		stats.HourlyActivity[e.ReadAt.Hour()]++
	}

	today := s.now()
	stats.CurrentStreak = currentStreak(days, today)
	stats.LongestStreak = longestStreak(days)

	stats.DailyActivity = make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		key := dayKey(today.AddDate(0, 0, -i))
		stats.DailyActivity = append(stats.DailyActivity, DayCount{Date: key, Count: dayCounts[key]})
	}
}

// fillBreakdowns groups ledger entries by genre and author. Orphaned entries
// (novel no longer in the catalog) are skipped and logged; the read path
// never fails on them.
func (s *statsService) fillBreakdowns(stats *AggregateStats, entries []models.HistoryEntry, novels map[int64]*models.Novel) {
	genres := make(map[string]*groupAcc)
	authors := make(map[string]*groupAcc)

	accumulate := func(m map[string]*groupAcc, key string, e models.HistoryEntry) {
		acc := m[key]
		if acc == nil {
			acc = &groupAcc{novels: make(map[int64]struct{})}
			m[key] = acc
		}
		acc.chapters++
		acc.novels[e.NovelID] = struct{}{}
		if e.ReadAt.After(acc.lastRead) {
			acc.lastRead = e.ReadAt
		}
	}

	for _, e := range entries {
		novel := novels[e.NovelID]
		if novel == nil {
			s.logger.Warn("history entry references unknown novel, skipping",
				"novel_id", e.NovelID, "chapter_id", e.ChapterID)
			continue
		}
		accumulate(authors, novel.Author, e)
		for _, g := range novel.Genres {
			accumulate(genres, g.Name, e)
		}
	}

	total := stats.TotalChapters
	for name, acc := range genres {
		percent := 0.0
		if total > 0 {
			percent = float64(acc.chapters) / float64(total) * 100
		}
		stats.GenreBreakdown = append(stats.GenreBreakdown, GenreStat{
			Genre:    name,
			Chapters: acc.chapters,
			Novels:   len(acc.novels),
			Percent:  percent,
		})
	}
	for name, acc := range authors {
		stats.AuthorBreakdown = append(stats.AuthorBreakdown, AuthorStat{
			Author:        name,
			Chapters:      acc.chapters,
			Novels:        len(acc.novels),
			AverageRating: averageRating(acc.novels, novels),
		})
	}

	stats.FavoriteGenre = favorite(genres)
	stats.FavoriteAuthor = favorite(authors)

	sortGenreStats(stats.GenreBreakdown, genres)
	sortAuthorStats(stats.AuthorBreakdown, authors)
}

// fillNovelTotals counts completed novels. All-time this is pointer-based
// (pointer reached the novel's chapter count); with a window it is
// restricted to novels with a completed-chapter entry inside the window.
func (s *statsService) fillNovelTotals(
	stats *AggregateStats,
	entries []models.HistoryEntry,
	pointers []models.LibraryPointer,
	novels map[int64]*models.Novel,
	window *Window,
) {
	completed := func(novelID int64, lastRead int) bool {
		novel := novels[novelID]
		return novel != nil && novel.ChapterCount > 0 && lastRead >= novel.ChapterCount
	}

	pointerByNovel := make(map[int64]int, len(pointers))
	for _, p := range pointers {
		pointerByNovel[p.NovelID] = p.LastReadChapter
	}

	if window == nil {
		for id, last := range pointerByNovel {
			if completed(id, last) {
				stats.TotalNovels++
			}
		}
		return
	}

	counted := make(map[int64]struct{})
	for _, e := range entries {
		if !e.Completed {
			continue
		}
		if _, ok := counted[e.NovelID]; ok {
			continue
		}
		if completed(e.NovelID, pointerByNovel[e.NovelID]) {
			counted[e.NovelID] = struct{}{}
		}
	}
	stats.TotalNovels = len(counted)
}

// fillCompletionRate computes completed shelf novels over shelf size.
// An empty shelf yields 0, never a division by zero.
func (s *statsService) fillCompletionRate(
	stats *AggregateStats,
	shelf []models.LibraryItem,
	pointerByNovel map[int64]int,
	novels map[int64]*models.Novel,
) {
	if len(shelf) == 0 {
		return
	}

	done := 0
	for _, item := range shelf {
		novel := novels[item.NovelID]
		if novel == nil || novel.ChapterCount == 0 {
			continue
		}
		if pointerByNovel[item.NovelID] >= novel.ChapterCount {
			done++
		}
	}
	stats.CompletionRate = float64(done) / float64(len(shelf)) * 100
}

func (s *statsService) readingSeconds(ctx context.Context, userID string, window *Window) (int64, error) {
	if window == nil {
		return s.readingTime.TotalSeconds(ctx, userID)
	}
	return s.readingTime.SecondsInRange(ctx, userID, repository.TimeRange{From: window.From, To: window.To})
}

// favorite picks the argmax group by chapter count; ties break toward the
// most recently read group, then by name. The name fallback matters: every
// genre of a multi-genre novel accumulates identical counts and timestamps,
// and map iteration order must never decide the result.
func favorite(groups map[string]*groupAcc) string {
	best := ""
	var bestAcc *groupAcc
	for name, acc := range groups {
		if bestAcc == nil ||
			acc.chapters > bestAcc.chapters ||
			(acc.chapters == bestAcc.chapters && acc.lastRead.After(bestAcc.lastRead)) ||
			(acc.chapters == bestAcc.chapters && acc.lastRead.Equal(bestAcc.lastRead) && name < best) {
			best, bestAcc = name, acc
		}
	}
	return best
}

// Breakdowns are ordered by chapter count, ties by recency then name, so
// responses are deterministic across calls.
func sortGenreStats(list []GenreStat, groups map[string]*groupAcc) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Chapters != b.Chapters {
			return a.Chapters > b.Chapters
		}
		la, lb := groups[a.Genre].lastRead, groups[b.Genre].lastRead
		if !la.Equal(lb) {
			return la.After(lb)
		}
		return a.Genre < b.Genre
	})
}

func sortAuthorStats(list []AuthorStat, groups map[string]*groupAcc) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Chapters != b.Chapters {
			return a.Chapters > b.Chapters
		}
		la, lb := groups[a.Author].lastRead, groups[b.Author].lastRead
		if !la.Equal(lb) {
			return la.After(lb)
		}
		return a.Author < b.Author
	})
}

func averageRating(ids map[int64]struct{}, novels map[int64]*models.Novel) float64 {
	var sum float64
	var n int
	for id := range ids {
		if novel := novels[id]; novel != nil && novel.AverageRating != nil {
			sum += *novel.AverageRating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
