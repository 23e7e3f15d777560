package cachecheck

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type redisStore struct {
	client RedisClient
	prefix string
}

func newRedisStore(cfg StoreConfig) (Store, error) {
	client := cfg.RedisClient
	if client == nil {
		if cfg.Address == "" {
			return nil, errors.New("redis: no address configured")
		}
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Address,
			DialTimeout:  cfg.Timeout,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			MaxRetries:   -1,
		})
	}
	return &redisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *redisStore) Driver() Driver {
	return DriverRedis
}

func (s *redisStore) Ready(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, s.cacheKey(key), value, ttl).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

func (s *redisStore) cacheKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
