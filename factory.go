package cachecheck

import (
	"context"
	"fmt"
	"sort"
)

// Opener builds a store for one driver from a fully defaulted config.
type Opener func(ctx context.Context, cfg StoreConfig) (Store, error)

// Registry records which cache client backends this binary can talk to.
// Its zero value has no drivers; use NewRegistry or DefaultRegistry.
type Registry struct {
	openers map[Driver]Opener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{openers: make(map[Driver]Opener)}
}

// DefaultRegistry returns a registry with every driver compiled into the module.
//
// Example: check for memcached support
//
//	reg := cachecheck.DefaultRegistry()
//	fmt.Println(reg.Available(cachecheck.DriverMemcached) == nil) // true
func DefaultRegistry() *Registry {
	return NewRegistry().
		Register(DriverMemcached, func(_ context.Context, cfg StoreConfig) (Store, error) {
			return newMemcachedStore(cfg)
		}).
		Register(DriverRedis, func(_ context.Context, cfg StoreConfig) (Store, error) {
			return newRedisStore(cfg)
		}).
		Register(DriverMemory, func(_ context.Context, cfg StoreConfig) (Store, error) {
			return newMemoryStore(cfg)
		})
}

// Register adds or replaces the opener for driver and returns r for chaining.
func (r *Registry) Register(driver Driver, open Opener) *Registry {
	if r.openers == nil {
		r.openers = make(map[Driver]Opener)
	}
	r.openers[driver] = open
	return r
}

// Available reports whether a client backend for driver is present.
// The returned error wraps ErrMissingCapability.
func (r *Registry) Available(driver Driver) error {
	if r == nil || r.openers[driver] == nil {
		return fmt.Errorf("%w: %s", ErrMissingCapability, driver)
	}
	return nil
}

// Drivers lists registered drivers in name order.
func (r *Registry) Drivers() []Driver {
	if r == nil {
		return nil
	}
	out := make([]Driver, 0, len(r.openers))
	for d := range r.openers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Open returns a concrete store for cfg.Driver. Construction failures are
// reported by every call on the returned store rather than here, so callers
// see them at the first operation.
func (r *Registry) Open(ctx context.Context, cfg StoreConfig) Store {
	cfg = cfg.withDefaults()
	if err := r.Available(cfg.Driver); err != nil {
		return &errorStore{driver: cfg.Driver, err: err}
	}
	store, err := r.openers[cfg.Driver](ctx, cfg)
	if err != nil {
		return &errorStore{driver: cfg.Driver, err: err}
	}
	return store
}

// OpenWith builds a store using a driver and a set of functional options.
//
// Example: memcached cluster endpoint
//
//	store := cachecheck.DefaultRegistry().OpenWith(ctx, cachecheck.DriverMemcached,
//		cachecheck.WithAddress("my-cluster.cfg.use1.cache.amazonaws.com:11211"),
//		cachecheck.WithTimeout(3*time.Second),
//	)
//	defer store.Close()
func (r *Registry) OpenWith(ctx context.Context, driver Driver, opts ...StoreOption) Store {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return r.Open(ctx, cfg)
}
