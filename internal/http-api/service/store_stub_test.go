package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"novelhub/internal/http-api/models"
	"novelhub/internal/http-api/repository"
)

// memStore is an in-memory repository.Store so the services can be tested
// without postgres. Transact simply runs the callback against the same
// maps; the services under test never rely on rollback.
type memStore struct {
	mu       sync.Mutex
	progress map[string]models.ProgressRecord
	history  map[string]models.HistoryEntry
	pointers map[string]models.LibraryPointer
	library  []models.LibraryItem
	reviews  map[string]models.Review
	goals    map[string]models.ReadingGoal
	unlocks  map[string]models.UserAchievement
}

func newMemStore() *memStore {
	return &memStore{
		progress: make(map[string]models.ProgressRecord),
		history:  make(map[string]models.HistoryEntry),
		pointers: make(map[string]models.LibraryPointer),
		reviews:  make(map[string]models.Review),
		goals:    make(map[string]models.ReadingGoal),
		unlocks:  make(map[string]models.UserAchievement),
	}
}

func key2(a string, b int64) string { return fmt.Sprintf("%s|%d", a, b) }

func (s *memStore) Progress() repository.ProgressRepository        { return memProgress{s} }
func (s *memStore) History() repository.HistoryRepository          { return memHistory{s} }
func (s *memStore) Pointers() repository.PointerRepository         { return memPointers{s} }
func (s *memStore) Library() repository.LibraryRepository          { return memLibrary{s} }
func (s *memStore) Reviews() repository.ReviewRepository           { return memReviews{s} }
func (s *memStore) Goals() repository.GoalRepository               { return memGoals{s} }
func (s *memStore) Achievements() repository.AchievementRepository { return memAchievements{s} }

func (s *memStore) Transact(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type memProgress struct{ s *memStore }

func (m memProgress) Upsert(_ context.Context, rec *models.ProgressRecord) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.progress[key2(rec.UserID, rec.ChapterID)] = *rec
	return nil
}

func (m memProgress) Get(_ context.Context, userID string, chapterID int64) (*models.ProgressRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rec, ok := m.s.progress[key2(userID, chapterID)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m memProgress) GetByUser(_ context.Context, userID string) ([]models.ProgressRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.ProgressRecord
	for _, rec := range m.s.progress {
		if rec.UserID == userID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (m memProgress) DeleteByUser(_ context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for k, rec := range m.s.progress {
		if rec.UserID == userID {
			delete(m.s.progress, k)
		}
	}
	return nil
}

type memHistory struct{ s *memStore }

func (m memHistory) Upsert(_ context.Context, entry *models.HistoryEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.history[key2(entry.UserID, entry.ChapterID)] = *entry
	return nil
}

func (m memHistory) ListByUser(_ context.Context, userID string, window *repository.TimeRange) ([]models.HistoryEntry, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.HistoryEntry
	for _, e := range m.s.history {
		if e.UserID != userID {
			continue
		}
		if window != nil && (e.ReadAt.Before(window.From) || !e.ReadAt.Before(window.To)) {
			continue
		}
		list = append(list, e)
	}
	return list, nil
}

func (m memHistory) ListByUserAndNovel(_ context.Context, userID string, novelID int64) ([]models.HistoryEntry, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.HistoryEntry
	for _, e := range m.s.history {
		if e.UserID == userID && e.NovelID == novelID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m memHistory) DeleteByUser(_ context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for k, e := range m.s.history {
		if e.UserID == userID {
			delete(m.s.history, k)
		}
	}
	return nil
}

type memPointers struct{ s *memStore }

func (m memPointers) Advance(_ context.Context, userID string, novelID int64, chapterNumber int, at time.Time) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	k := key2(userID, novelID)
	cur, ok := m.s.pointers[k]
	if ok && chapterNumber <= cur.LastReadChapter {
		return false, nil
	}
	m.s.pointers[k] = models.LibraryPointer{
		UserID:          userID,
		NovelID:         novelID,
		LastReadChapter: chapterNumber,
		UpdatedAt:       at,
	}
	return true, nil
}

func (m memPointers) Get(_ context.Context, userID string, novelID int64) (*models.LibraryPointer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	ptr, ok := m.s.pointers[key2(userID, novelID)]
	if !ok {
		return nil, nil
	}
	return &ptr, nil
}

func (m memPointers) ListByUser(_ context.Context, userID string) ([]models.LibraryPointer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.LibraryPointer
	for _, p := range m.s.pointers {
		if p.UserID == userID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (m memPointers) DeleteByUser(_ context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for k, p := range m.s.pointers {
		if p.UserID == userID {
			delete(m.s.pointers, k)
		}
	}
	return nil
}

type memLibrary struct{ s *memStore }

func (m memLibrary) Add(_ context.Context, item *models.LibraryItem) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, it := range m.s.library {
		if it.UserID == item.UserID && it.NovelID == item.NovelID {
			return repository.ErrDuplicate
		}
	}
	m.s.library = append(m.s.library, *item)
	return nil
}

func (m memLibrary) Remove(_ context.Context, userID string, novelID int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, it := range m.s.library {
		if it.UserID == userID && it.NovelID == novelID {
			m.s.library = append(m.s.library[:i], m.s.library[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("novel not found in library")
}

func (m memLibrary) List(_ context.Context, userID string) ([]models.LibraryItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.LibraryItem
	for _, it := range m.s.library {
		if it.UserID == userID {
			list = append(list, it)
		}
	}
	return list, nil
}

func (m memLibrary) Exists(_ context.Context, userID string, novelID int64) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, it := range m.s.library {
		if it.UserID == userID && it.NovelID == novelID {
			return true, nil
		}
	}
	return false, nil
}

type memReviews struct{ s *memStore }

func (m memReviews) Upsert(_ context.Context, review *models.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.reviews[key2(review.UserID, review.NovelID)] = *review
	return nil
}

func (m memReviews) GetByUserAndNovel(_ context.Context, userID string, novelID int64) (*models.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.reviews[key2(userID, novelID)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m memReviews) ListByNovel(_ context.Context, novelID int64, page, pageSize int) ([]models.Review, int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.Review
	for _, r := range m.s.reviews {
		if r.NovelID == novelID {
			list = append(list, r)
		}
	}
	return list, int64(len(list)), nil
}

func (m memReviews) CountByUser(_ context.Context, userID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, r := range m.s.reviews {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m memReviews) AverageByNovel(_ context.Context, novelID int64) (float64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var sum, n float64
	for _, r := range m.s.reviews {
		if r.NovelID == novelID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

type memGoals struct{ s *memStore }

func (m memGoals) Upsert(_ context.Context, goal *models.ReadingGoal) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.goals[goal.UserID] = *goal
	return nil
}

func (m memGoals) Get(_ context.Context, userID string) (*models.ReadingGoal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	g, ok := m.s.goals[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m memGoals) Delete(_ context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.goals, userID)
	return nil
}

type memAchievements struct{ s *memStore }

func (m memAchievements) RecordUnlock(_ context.Context, userID, achievementID string, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	k := userID + "|" + achievementID
	if _, ok := m.s.unlocks[k]; ok {
		return nil
	}
	m.s.unlocks[k] = models.UserAchievement{UserID: userID, AchievementID: achievementID, UnlockedAt: at}
	return nil
}

func (m memAchievements) ListByUser(_ context.Context, userID string) ([]models.UserAchievement, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var list []models.UserAchievement
	for _, u := range m.s.unlocks {
		if u.UserID == userID {
			list = append(list, u)
		}
	}
	return list, nil
}

// memCatalog is an in-memory repository.CatalogRepository.
type memCatalog struct {
	chapters map[int64]models.Chapter
	novels   map[int64]models.Novel
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		chapters: make(map[int64]models.Chapter),
		novels:   make(map[int64]models.Novel),
	}
}

func (c *memCatalog) addNovel(n models.Novel, chapterIDBase int64) {
	c.novels[n.ID] = n
	for i := 1; i <= n.ChapterCount; i++ {
		id := chapterIDBase + int64(i)
		c.chapters[id] = models.Chapter{ID: id, NovelID: n.ID, Number: i}
	}
}

func (c *memCatalog) GetChapter(_ context.Context, chapterID int64) (*models.Chapter, error) {
	ch, ok := c.chapters[chapterID]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (c *memCatalog) GetNovel(_ context.Context, novelID int64) (*models.Novel, error) {
	n, ok := c.novels[novelID]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (c *memCatalog) GetNovels(_ context.Context, novelIDs []int64) (map[int64]*models.Novel, error) {
	out := make(map[int64]*models.Novel)
	for _, id := range novelIDs {
		if n, ok := c.novels[id]; ok {
			cp := n
			out[id] = &cp
		}
	}
	return out, nil
}

// stubPrivacy is a settable repository.PrivacyStore.
type stubPrivacy struct {
	enabled bool
	err     error
}

func (p *stubPrivacy) PrivacyMode(_ context.Context, _ string) (bool, error) {
	return p.enabled, p.err
}

func (p *stubPrivacy) SetPrivacyMode(_ context.Context, _ string, enabled bool) error {
	p.enabled = enabled
	return nil
}

// stubReadingTime is an in-memory repository.ReadingTimeStore.
type stubReadingTime struct {
	total  int64
	perDay map[string]int64
}

func newStubReadingTime() *stubReadingTime {
	return &stubReadingTime{perDay: make(map[string]int64)}
}

func (r *stubReadingTime) Add(_ context.Context, _ string, seconds int64, at time.Time) error {
	r.total += seconds
	r.perDay[at.Format("2006-01-02")] += seconds
	return nil
}

func (r *stubReadingTime) TotalSeconds(_ context.Context, _ string) (int64, error) {
	return r.total, nil
}

func (r *stubReadingTime) SecondsInRange(_ context.Context, _ string, window repository.TimeRange) (int64, error) {
	var sum int64
	day := time.Date(window.From.Year(), window.From.Month(), window.From.Day(), 0, 0, 0, 0, time.UTC)
	for day.Before(window.To) {
		sum += r.perDay[day.Format("2006-01-02")]
		day = day.AddDate(0, 0, 1)
	}
	return sum, nil
}
