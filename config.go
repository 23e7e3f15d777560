package cachecheck

import "time"

const (
	defaultOperationTimeout      = 3 * time.Second
	defaultMemoryCleanupInterval = 10 * time.Minute
	defaultMemoryTTL             = 5 * time.Minute
)

// StoreConfig controls how a Store is constructed.
type StoreConfig struct {
	Driver Driver

	// Address is the host:port of the cluster configuration endpoint.
	Address string

	// Timeout bounds each network round trip made by the client.
	Timeout time.Duration

	// Prefix namespaces keys on shared backends. Empty leaves keys untouched.
	Prefix string

	// MemoryCleanupInterval controls in-process cache eviction.
	MemoryCleanupInterval time.Duration

	// RedisClient overrides the client built from Address for DriverRedis.
	RedisClient RedisClient

	// MemcachedClient overrides the client built from Address for DriverMemcached.
	MemcachedClient MemcachedClient
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemcached
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultOperationTimeout
	}
	if c.MemoryCleanupInterval <= 0 {
		c.MemoryCleanupInterval = defaultMemoryCleanupInterval
	}
	return c
}
