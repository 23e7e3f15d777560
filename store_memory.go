package cachecheck

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryStore keeps values in process. It backs dry runs of the check when no
// cluster is reachable.
type memoryStore struct {
	cache *gocache.Cache
}

func newMemoryStore(cfg StoreConfig) (Store, error) {
	return &memoryStore{
		cache: gocache.New(defaultMemoryTTL, cfg.MemoryCleanupInterval),
	}, nil
}

// NewMemoryStore is a convenience for an in-process store.
//
// Example: memory store
//
//	store := cachecheck.NewMemoryStore()
//	_ = store.Set(context.Background(), "k", []byte("v"), time.Minute)
//	fmt.Println(store.Driver()) // memory
func NewMemoryStore(opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: DriverMemory}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	store, _ := newMemoryStore(cfg.withDefaults())
	return store
}

func (s *memoryStore) Driver() Driver {
	return DriverMemory
}

func (s *memoryStore) Ready(context.Context) error { return nil }

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	body, ok := item.([]byte)
	if !ok {
		return nil, false, nil
	}
	clone := make([]byte, len(body))
	copy(clone, body)
	return clone, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	clone := make([]byte, len(value))
	copy(clone, value)
	s.cache.Set(key, clone, ttl)
	return nil
}

func (s *memoryStore) Close() error {
	s.cache.Flush()
	return nil
}
