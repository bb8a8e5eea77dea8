package auth

import (
	"context"

	"github.com/redis/go-redis/v9"

	"prince-pos/internal/domain"
)

const (
	accessKey  = "session:access"
	refreshKey = "session:refresh"
)

// RedisTokenStore keeps the token pair in the terminal-local redis under
// fixed keys, so a restart rehydrates the session.
type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, pair domain.TokenPair) error {
	if err := s.Client.Set(ctx, accessKey, pair.Access, 0).Err(); err != nil {
		return err
	}
	return s.Client.Set(ctx, refreshKey, pair.Refresh, 0).Err()
}

func (s *RedisTokenStore) Load(ctx context.Context) (domain.TokenPair, error) {
	var pair domain.TokenPair

	access, err := s.Client.Get(ctx, accessKey).Result()
	if err != nil && err != redis.Nil {
		return pair, err
	}
	refresh, err := s.Client.Get(ctx, refreshKey).Result()
	if err != nil && err != redis.Nil {
		return pair, err
	}

	pair.Access = access
	pair.Refresh = refresh
	return pair, nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, accessKey, refreshKey).Err()
}

var _ TokenStore = (*RedisTokenStore)(nil)
