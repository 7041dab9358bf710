package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const credentialKeyPrefix = "telegraph:credential:"

type RedisConfig struct {
	Client  *redis.Client
	Profile string
}

// RedisStore keeps the credential under telegraph:credential:<profile>.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	profile := strings.TrimSpace(cfg.Profile)
	if profile == "" {
		profile = "default"
	}
	if err := cfg.Client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{
		client: cfg.Client,
		key:    credentialKeyPrefix + profile,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, credential string) error {
	return s.client.Set(ctx, s.key, strings.TrimSpace(credential), 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
