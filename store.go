package cachecheck

import (
	"context"
	"time"
)

// Store is the slice of a cache client the connectivity check relies on.
type Store interface {
	Driver() Driver
	// Ready performs the backend's native health check.
	Ready(ctx context.Context) error
	// Get returns the value for key. A miss reports ok=false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
