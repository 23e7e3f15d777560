package cachecheck

import (
	"fmt"
	"strings"
)

// Driver identifies cache backend.
type Driver string

const (
	DriverMemcached Driver = "memcached"
	DriverRedis     Driver = "redis"
	DriverMemory    Driver = "memory"
)

const (
	defaultMemcachedPort = 11211
	defaultRedisPort     = 6379
)

// DefaultPort returns the port a cluster of this driver listens on when the
// endpoint does not name one.
func (d Driver) DefaultPort() int {
	if d == DriverRedis {
		return defaultRedisPort
	}
	return defaultMemcachedPort
}

// Title is the human readable product name used in status lines.
func (d Driver) Title() string {
	switch d {
	case DriverMemcached:
		return "Memcached"
	case DriverRedis:
		return "Redis"
	case DriverMemory:
		return "in-memory"
	default:
		return string(d)
	}
}

// ParseDriver normalizes a driver name coming from flags or config files.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return DriverMemcached, nil
	case DriverMemcached, DriverRedis, DriverMemory:
		return d, nil
	default:
		return "", fmt.Errorf("unknown cache driver %q", name)
	}
}
