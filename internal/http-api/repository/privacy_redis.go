package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PrivacyStore is the injected privacy-mode capability. The recorder checks
// it before doing anything else; tests swap in a stub so no preference store
// is needed.
type PrivacyStore interface {
	PrivacyMode(ctx context.Context, userID string) (bool, error)
	SetPrivacyMode(ctx context.Context, userID string, enabled bool) error
}

type privacyRedisStore struct {
	client *redis.Client
}

func NewPrivacyRedisStore(client *redis.Client) PrivacyStore {
	return &privacyRedisStore{client: client}
}

func privacyKey(userID string) string {
	return fmt.Sprintf("privacy:user:%s", userID)
}

// PrivacyMode treats an absent key as "off". Lookup errors propagate so the
// caller never writes through an unknown privacy state.
func (s *privacyRedisStore) PrivacyMode(ctx context.Context, userID string) (bool, error) {
	val, err := s.client.Get(ctx, privacyKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get privacy mode: %w", err)
	}
	return val == "1", nil
}

func (s *privacyRedisStore) SetPrivacyMode(ctx context.Context, userID string, enabled bool) error {
	val := "0"
	if enabled {
		val = "1"
	}
	if err := s.client.Set(ctx, privacyKey(userID), val, 0).Err(); err != nil {
		return fmt.Errorf("set privacy mode: %w", err)
	}
	return nil
}
