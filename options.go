package cachecheck

import "time"

// StoreOption mutates StoreConfig when constructing a store.
type StoreOption func(StoreConfig) StoreConfig

// WithAddress sets the host:port the store connects to.
func WithAddress(addr string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Address = addr
		return cfg
	}
}

// WithTimeout bounds each client round trip.
func WithTimeout(timeout time.Duration) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Timeout = timeout
		return cfg
	}
}

// WithPrefix sets the key prefix for shared backends.
func WithPrefix(prefix string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Prefix = prefix
		return cfg
	}
}

// WithMemoryCleanupInterval overrides the sweep interval for the memory driver.
func WithMemoryCleanupInterval(interval time.Duration) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.MemoryCleanupInterval = interval
		return cfg
	}
}

// WithRedisClient injects a redis client instead of dialing Address.
func WithRedisClient(client RedisClient) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.RedisClient = client
		return cfg
	}
}

// WithMemcachedClient injects a memcached client instead of dialing Address.
func WithMemcachedClient(client MemcachedClient) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.MemcachedClient = client
		return cfg
	}
}
