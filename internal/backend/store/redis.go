package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

const (
	redisKeyPrefix = "rgbexplorer:analysis:"
	redisTTL       = 24 * time.Hour
)

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL and pings the server once.
func NewRedisStore(connectionString string) (AnalysisStore, error) {
	if connectionString == "" {
		return nil, errors.New("redis connection string cannot be empty")
	}
	opts, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*scanner.Result, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var result scanner.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result %s: %w", key, err)
	}
	return &result, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, result *scanner.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", key, err)
	}
	return s.client.Set(ctx, redisKeyPrefix+key, data, redisTTL).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
