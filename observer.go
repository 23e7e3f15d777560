package cachecheck

import (
	"context"
	"time"
)

// Observer receives events for store operations.
// It is called after each operation completes.
type Observer interface {
	OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)

// OnCacheOp implements Observer.
func (f ObserverFunc) OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver) {
	if f == nil {
		return
	}
	f(ctx, op, key, hit, err, dur, driver)
}

// Observe wraps store so that obs sees every Get, Set and Ready call.
// A nil observer returns store unchanged.
func Observe(store Store, obs Observer) Store {
	if obs == nil {
		return store
	}
	return &observedStore{inner: store, obs: obs}
}

type observedStore struct {
	inner Store
	obs   Observer
}

func (s *observedStore) Driver() Driver { return s.inner.Driver() }

func (s *observedStore) Ready(ctx context.Context) error {
	start := time.Now()
	err := s.inner.Ready(ctx)
	s.obs.OnCacheOp(ctx, "ready", "", err == nil, err, time.Since(start), s.inner.Driver())
	return err
}

func (s *observedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	body, ok, err := s.inner.Get(ctx, key)
	s.obs.OnCacheOp(ctx, "get", key, ok, err, time.Since(start), s.inner.Driver())
	return body, ok, err
}

func (s *observedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value, ttl)
	s.obs.OnCacheOp(ctx, "set", key, false, err, time.Since(start), s.inner.Driver())
	return err
}

func (s *observedStore) Close() error { return s.inner.Close() }
