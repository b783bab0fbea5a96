package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// readingTimeTTL bounds how long per-day counters are kept. 400 days covers
// a full year of charts with slack.
const readingTimeTTL = 400 * 24 * time.Hour

// ReadingTimeStore accumulates reading time reported by the reader's
// session timer. Time is not derived from progress events; this counter is
// the collaborator-owned source surfaced as a pass-through sum in stats.
type ReadingTimeStore interface {
	Add(ctx context.Context, userID string, seconds int64, at time.Time) error
	TotalSeconds(ctx context.Context, userID string) (int64, error)
	SecondsInRange(ctx context.Context, userID string, window TimeRange) (int64, error)
}

type readingTimeRedisStore struct {
	client *redis.Client
}

func NewReadingTimeRedisStore(client *redis.Client) ReadingTimeStore {
	return &readingTimeRedisStore{client: client}
}

func readingTotalKey(userID string) string {
	return fmt.Sprintf("reading:total:%s", userID)
}

func readingDayKey(userID string, day time.Time) string {
	return fmt.Sprintf("reading:day:%s:%s", userID, day.Format("2006-01-02"))
}

// Add increments both the all-time counter and the per-day bucket so window
// queries stay cheap.
func (s *readingTimeRedisStore) Add(ctx context.Context, userID string, seconds int64, at time.Time) error {
	if seconds <= 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.IncrBy(ctx, readingTotalKey(userID), seconds)
	dayKey := readingDayKey(userID, at)
	pipe.IncrBy(ctx, dayKey, seconds)
	pipe.Expire(ctx, dayKey, readingTimeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add reading time: %w", err)
	}
	return nil
}

func (s *readingTimeRedisStore) TotalSeconds(ctx context.Context, userID string) (int64, error) {
	val, err := s.client.Get(ctx, readingTotalKey(userID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get reading time: %w", err)
	}
	secs, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse reading time: %w", err)
	}
	return secs, nil
}

// SecondsInRange sums the per-day buckets covering [From, To).
func (s *readingTimeRedisStore) SecondsInRange(ctx context.Context, userID string, window TimeRange) (int64, error) {
	var keys []string
	day := time.Date(window.From.Year(), window.From.Month(), window.From.Day(), 0, 0, 0, 0, window.From.Location())
	for day.Before(window.To) {
		keys = append(keys, readingDayKey(userID, day))
		day = day.AddDate(0, 0, 1)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("get reading time range: %w", err)
	}

	var total int64
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // missing day
		}
		secs, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		total += secs
	}
	return total, nil
}
