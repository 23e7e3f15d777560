package cachecheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedClient captures the subset of memcache.Client used by the store.
type MemcachedClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Ping() error
}

type memcachedStore struct {
	client MemcachedClient
	prefix string
}

func newMemcachedStore(cfg StoreConfig) (Store, error) {
	client := cfg.MemcachedClient
	if client == nil {
		if cfg.Address == "" {
			return nil, errors.New("memcached: no address configured")
		}
		var servers memcache.ServerList
		if err := servers.SetServers(cfg.Address); err != nil {
			return nil, fmt.Errorf("memcached: resolve %s: %w", cfg.Address, err)
		}
		mc := memcache.NewFromSelector(&servers)
		mc.Timeout = cfg.Timeout
		client = mc
	}
	return &memcachedStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *memcachedStore) Driver() Driver { return DriverMemcached }

func (s *memcachedStore) Ready(context.Context) error {
	if err := s.client.Ping(); err != nil {
		return fmt.Errorf("memcached readiness failed: %w", err)
	}
	return nil
}

func (s *memcachedStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := s.client.Get(s.cacheKey(key))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return item.Value, true, nil
}

func (s *memcachedStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.client.Set(&memcache.Item{
		Key:        s.cacheKey(key),
		Value:      value,
		Expiration: expirationSeconds(ttl),
	})
	if err != nil {
		return fmt.Errorf("memcached set failed: %w", err)
	}
	return nil
}

func (s *memcachedStore) Close() error {
	if closer, ok := s.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (s *memcachedStore) cacheKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// expirationSeconds converts ttl to the whole-second expiry memcached expects.
// Sub-second values round up to one second; zero means no expiry.
func expirationSeconds(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}
	seconds := int32(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
