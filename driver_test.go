package cachecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemcached, d)

	d, err = ParseDriver(" REDIS ")
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, d)

	_, err = ParseDriver("nats")
	assert.Error(t, err)
}

func TestDriverDefaults(t *testing.T) {
	assert.Equal(t, 11211, DriverMemcached.DefaultPort())
	assert.Equal(t, 6379, DriverRedis.DefaultPort())
	assert.Equal(t, 11211, DriverMemory.DefaultPort())
	assert.Equal(t, "Memcached", DriverMemcached.Title())
	assert.Equal(t, "Redis", DriverRedis.Title())
	assert.Equal(t, "custom", Driver("custom").Title())
}
